package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	announcementDomain "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	announcementRepo "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/repository"
	announcementService "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/service"
	relayDomain "github.com/reshetovitsme/feed-announcer/internal/modules/relay/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *relayDomain.Status, *announcementService.Service) {
	t.Helper()
	repo, err := announcementRepo.NewMemoryStorage(10)
	require.NoError(t, err)
	announcements := announcementService.New(repo, "https://example.com/feed")
	status := relayDomain.NewStatus()
	return New(&config.Config{HTTPPort: "8080"}, status, announcements), status, announcements
}

func TestServer_Health(t *testing.T) {
	s, status, _ := newTestServer(t)
	status.SetReady(true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["ready"])
}

func TestServer_Status(t *testing.T) {
	s, status, _ := newTestServer(t)
	status.Record(relayDomain.CycleReport{New: 2, Delivered: 2}, 7)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var snap relayDomain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, relayDomain.CycleStateIdle, snap.State)
	assert.Equal(t, 1, snap.CyclesRun)
	assert.Equal(t, 2, snap.Announced)
	assert.Equal(t, 7, snap.Seen)
	require.NotNil(t, snap.LastCycle)
	assert.Equal(t, 2, snap.LastCycle.Delivered)
}

func TestServer_RSS(t *testing.T) {
	s, _, announcements := newTestServer(t)
	require.NoError(t, announcements.Record(&announcementDomain.Announcement{
		EntryKey: "a",
		Link:     "https://example.com/a",
		Title:    "Entry A",
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rss", nil)
	req.Host = "relay.local"
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "https://example.com/a")
	assert.Contains(t, rec.Body.String(), "http://relay.local/rss")
}

func TestServer_Root(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Feed Announcer")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestGetScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/rss", nil)
	assert.Equal(t, "http", getScheme(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https", getScheme(req))
}
