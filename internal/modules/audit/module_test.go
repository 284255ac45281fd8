package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_RecordsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()

	e := echo.New()
	reg := registry.New(nil)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bridge)
	m := New()
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(ctx, e.Group("/api"), reg))
	defer m.Shutdown(ctx)

	trail := m.Trail()

	require.NoError(t, pubsub.Publish(ctx, bridge, events.EnrollmentSucceeded, "v1", events.FormCompleted{FormID: "f1", Kind: "enroll", Name: "Jane", At: time.Now()}))
	require.NoError(t, pubsub.Publish(ctx, bridge, events.AccountCreated, "v1", events.AccountRegistered{AccountID: "a1", At: time.Now()}))

	assert.Eventually(t, func() bool {
		return trail.Count(events.EnrollmentSucceeded.Name()) == 1 && trail.Count(events.AccountCreated.Name()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/audit", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Counts[events.EnrollmentSucceeded.Name()])
	assert.Len(t, stats.Recent, 2)
}

func TestModule_BootWithoutSubscriber(t *testing.T) {
	m := New()
	err := m.Boot(context.Background(), echo.New().Group(""), registry.New(nil))
	assert.Error(t, err)
}

func TestTrail_KeepsRecentNewestFirst(t *testing.T) {
	trail := NewTrail()
	for i := 0; i < maxRecent+5; i++ {
		trail.Record(Entry{Topic: "t", Summary: string(rune('a' + i%26))})
	}

	stats := trail.Stats()
	assert.Equal(t, maxRecent+5, stats.Counts["t"])
	require.Len(t, stats.Recent, maxRecent)
	last := maxRecent + 4
	assert.Equal(t, string(rune('a'+last%26)), stats.Recent[0].Summary)
}
