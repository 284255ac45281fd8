package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FixedCode(t *testing.T) {
	s := NewService(Options{FixedCode: "1234"})

	ch, err := s.Issue("+1 555 0100")
	require.NoError(t, err)
	assert.Equal(t, "1234", ch.Code)
	assert.NotEmpty(t, ch.ID)

	ok, err := s.Verify("+1 555 0100", "0000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify("+1 555 0100", "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	// The challenge is single use.
	_, err = s.Verify("+1 555 0100", "1234")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestService_AttemptsExhausted(t *testing.T) {
	s := NewService(Options{MaxAttempts: 2})
	s.generate = func() (string, error) { return "4321", nil }
	_, err := s.Issue("555")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := s.Verify("555", "9999")
		require.NoError(t, err)
		require.False(t, ok)
	}

	_, err = s.Verify("555", "4321")
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Zero(t, s.Pending())
}

func TestService_FixedCodeHasNoAttemptLimit(t *testing.T) {
	s := NewService(Options{FixedCode: "1234", MaxAttempts: 2})
	_, err := s.Issue("555")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		ok, err := s.Verify("555", "0000")
		require.NoError(t, err)
		require.False(t, ok)
	}

	ok, err := s.Verify("555", "1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Expiry(t *testing.T) {
	s := NewService(Options{FixedCode: "1234", TTL: time.Minute})
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.Issue("555")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Verify("555", "1234")
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestService_ReissueReplacesPending(t *testing.T) {
	s := NewService(Options{})
	codes := []string{"1111", "2222"}
	s.generate = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	_, err := s.Issue("555")
	require.NoError(t, err)
	_, err = s.Issue("555")
	require.NoError(t, err)

	ok, err := s.Verify("555", "1111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify("555", "2222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{4}$`, code)
	}
}
