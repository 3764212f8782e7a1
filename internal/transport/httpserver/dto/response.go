package dto

import (
	"time"

	"birdcams-tv/internal/app/service"
	"birdcams-tv/internal/domain"
)

// QueueResponse represents a play queue.
type QueueResponse struct {
	Items   []domain.VideoItem `json:"items"`
	Current int                `json:"current"`
	Size    int                `json:"size"`
}

// FromQueue converts domain.Queue to QueueResponse.
func FromQueue(q domain.Queue) QueueResponse {
	items := q.Items
	if items == nil {
		items = []domain.VideoItem{}
	}

	return QueueResponse{
		Items:   items,
		Current: q.Current,
		Size:    len(items),
	}
}

// RebuildResponse represents the result of a forced cache rebuild.
type RebuildResponse struct {
	LiveStreams  int    `json:"live_streams"`
	Playlists    int    `json:"playlists"`
	Videos       int    `json:"videos"`
	Duration     string `json:"duration"`
	CacheWritten bool   `json:"cache_written"`
}

// FromRebuildReport converts service.RebuildReport to RebuildResponse.
func FromRebuildReport(r service.RebuildReport) RebuildResponse {
	return RebuildResponse{
		LiveStreams:  r.LiveStreams,
		Playlists:    r.Playlists,
		Videos:       r.Videos,
		Duration:     r.Duration.String(),
		CacheWritten: r.CacheWritten,
	}
}

// CacheStatusResponse represents the cache state.
type CacheStatusResponse struct {
	Fresh            bool   `json:"fresh"`
	WrittenAt        string `json:"written_at,omitempty"`
	AgeSeconds       int64  `json:"age_seconds"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

// FromCacheStatus converts service.CacheStatus to CacheStatusResponse.
func FromCacheStatus(s service.CacheStatus) CacheStatusResponse {
	resp := CacheStatusResponse{
		Fresh:            s.Fresh,
		AgeSeconds:       int64(s.Age / time.Second),
		ExpiresInSeconds: int64(s.ExpiresIn / time.Second),
	}
	if !s.WrittenAt.IsZero() {
		resp.WrittenAt = s.WrittenAt.UTC().Format(time.RFC3339)
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
