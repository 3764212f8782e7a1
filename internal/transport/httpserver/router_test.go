package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"birdcams-tv/internal/app/service"
	"birdcams-tv/internal/domain"
	"birdcams-tv/internal/infra/cache"
	"birdcams-tv/internal/job"
	"birdcams-tv/internal/validator"
	"birdcams-tv/pkg/locker"
)

type stubSource struct {
	err error
}

func (s *stubSource) FetchLiveStreams(context.Context) ([]domain.VideoItem, error) {
	return []domain.VideoItem{{ID: "live-1", Title: "Hawk Cam"}}, s.err
}

func (s *stubSource) FetchPlaylists(context.Context) ([]domain.Playlist, error) {
	return []domain.Playlist{{ID: "PL1", Title: "Herons"}}, s.err
}

func (s *stubSource) FetchPlaylistItems(context.Context, string) ([]domain.VideoItem, error) {
	return []domain.VideoItem{{ID: "v1", Title: "Nest"}}, s.err
}

func newTestServer(t *testing.T, source domain.VideoSource, ready bool) *Server {
	t.Helper()

	logger := zap.NewNop()
	aggregates := service.NewAggregateService(cache.NewMemoryStore(time.Hour), source,
		service.AggregateConfig{FetchTimeout: time.Second, TTL: time.Hour}, logger)
	station := service.NewStationService(aggregates, nil, logger)
	scheduler := job.NewRefreshScheduler(aggregates, job.RefreshConfig{Interval: time.Hour, Timeout: time.Second},
		logger, locker.NewLocalLocker(logger))

	return NewServer(ServerConfig{Port: 0}, Deps{
		Aggregates: aggregates,
		Station:    station,
		Cache:      aggregates,
		Rebuilder:  scheduler,
		Ready:      func(context.Context) bool { return ready },
	}, validator.New(), logger)
}

func get(t *testing.T, s *Server, target string) (int, string) {
	t.Helper()

	resp, err := s.App.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServer_KioskPage(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	status, body := get(t, s, "/")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "<title>BirdCams TV</title>")
	assert.Contains(t, body, "Hawk Cam")
	assert.Contains(t, body, "Herons")
	assert.Contains(t, body, `data-video="v1"`)
}

func TestServer_KioskPage_EmptyState(t *testing.T) {
	s := newTestServer(t, &stubSource{err: errors.New("upstream down")}, true)

	status, body := get(t, s, "/")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "No bird cams are available right now")
}

func TestServer_DataRoute(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/api/v1/data", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "fetched", resp.Header.Get("X-Cache"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, err = s.App.Test(httptest.NewRequest("GET", "/api/v1/data", nil))
	require.NoError(t, err)
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))
}

func TestServer_RebuildThenStatus(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	resp, err := s.App.Test(httptest.NewRequest("POST", "/api/v1/admin/cache/rebuild", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	status, body := get(t, s, "/api/v1/admin/cache")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, `"fresh":true`)
}

func TestServer_HealthChecks(t *testing.T) {
	ready := newTestServer(t, &stubSource{}, true)
	notReady := newTestServer(t, &stubSource{}, false)

	status, _ := get(t, ready, "/livez")
	assert.Equal(t, 200, status)

	status, _ = get(t, ready, "/readyz")
	assert.Equal(t, 200, status)

	status, _ = get(t, notReady, "/readyz")
	assert.Equal(t, 503, status)
}

func TestServer_StaticAssets(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	status, body := get(t, s, "/static/kiosk.js")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "/api/v1/station/queue")
}

func TestServer_UnknownPathsAre404(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	for _, target := range []string{"/.well-known/appspecific/com.chrome.devtools.json", "/nope", "/api/v1/unknown"} {
		status, _ := get(t, s, target)
		assert.Equal(t, 404, status, target)
	}
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t, &stubSource{}, true)

	req := httptest.NewRequest("GET", "/api/v1/data", nil)
	req.Header.Set("Origin", "https://kiosk.example.org")

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
