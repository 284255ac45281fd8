package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/alphaprime/internal/app"
	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/modules/audit"
	"github.com/nfrund/alphaprime/internal/modules/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		SessionSecret:      "a-very-secret-key-for-testing-!",
		OTPTTL:             time.Minute,
		OTPMaxAttempts:     5,
		OTPFixedCode:       "1234",
		FormTTL:            time.Minute,
		RateLimitPerMinute: 100,
		SMSProvider:        "log",
	}
}

type testSite struct {
	t      *testing.T
	app    *app.App
	ts     *httptest.Server
	client *http.Client
}

func setupSite(t *testing.T) *testSite {
	t.Helper()
	ctx := context.Background()

	a, err := app.New(ctx, testConfig())
	require.NoError(t, err)
	require.NoError(t, a.Server.Boot(ctx))

	ts := httptest.NewServer(a.Server.E)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		ts.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, a.Server.Shutdown(shutdownCtx))
		assert.NoError(t, a.Close(shutdownCtx))
	})

	return &testSite{
		t:   t,
		app: a,
		ts:  ts,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (s *testSite) get(path string) (int, string) {
	s.t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.ts.URL+path, nil)
	require.NoError(s.t, err)
	req.Header.Set("HX-Request", "true")
	return s.send(req)
}

func (s *testSite) post(path string, form url.Values) (int, string) {
	s.t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return s.send(req)
}

func (s *testSite) send(req *http.Request) (int, string) {
	s.t.Helper()
	resp, err := s.client.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, string(body)
}

var formIDPattern = regexp.MustCompile(`/forms/([0-9a-f-]{36})/details`)

func TestServer_HomeAndHealth(t *testing.T) {
	site := setupSite(t)

	status, body := site.get("/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, body = site.get("/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Featured Courses")
	assert.Contains(t, body, "Understanding Market Sentiment")
	assert.Contains(t, body, "Home - AlphaPrime")

	status, _ = site.get("/static/js/code-input.js")
	assert.Equal(t, http.StatusOK, status)
}

func TestServer_CatalogAPI(t *testing.T) {
	site := setupSite(t)

	status, body := site.get("/api/catalog")
	require.Equal(t, http.StatusOK, status)

	var resp content.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Courses, 3)
	assert.Len(t, resp.Posts, 3)
	assert.Len(t, resp.Career, 3)
}

func TestServer_RegisterFlow(t *testing.T) {
	site := setupSite(t)

	status, body := site.get("/modal/register")
	require.Equal(t, http.StatusOK, status)
	m := formIDPattern.FindStringSubmatch(body)
	require.Len(t, m, 2)
	id := m[1]

	status, body = site.post("/forms/"+id+"/details", url.Values{
		"name":     {"Jane Doe"},
		"email":    {"jane@example.com"},
		"phone":    {"+1 555 0100"},
		"password": {"hunter22"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Enter the 4-digit code sent to +1 555 0100")

	status, body = site.post("/forms/"+id+"/code/paste", url.Values{"text": {"1234"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Success! Welcome, Jane Doe.")

	account, err := site.app.Accounts.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", account.Name)

	// The form is gone once it succeeds.
	_, body = site.post("/forms/"+id+"/back", url.Values{})
	assert.Contains(t, body, "This form has expired. Please start again.")

	assert.Eventually(t, func() bool {
		status, body := site.get("/api/audit")
		if status != http.StatusOK {
			return false
		}
		var stats audit.Stats
		if err := json.Unmarshal([]byte(body), &stats); err != nil {
			return false
		}
		return stats.Counts[events.EnrollmentSucceeded.Name()] == 1 &&
			stats.Counts[events.AccountCreated.Name()] == 1 &&
			stats.Counts[events.CodeSent.Name()] == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServer_FormsAreScopedToVisitor(t *testing.T) {
	owner := setupSite(t)

	_, body := owner.get("/modal/enroll")
	m := formIDPattern.FindStringSubmatch(body)
	require.Len(t, m, 2)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	stranger := &testSite{t: t, app: owner.app, ts: owner.ts, client: &http.Client{Jar: jar}}

	_, body = stranger.post("/forms/"+m[1]+"/back", url.Values{})
	assert.Contains(t, body, "This form has expired. Please start again.")
}
