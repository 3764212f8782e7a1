// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "birdcams-tv/internal/domain"

// QueueRequest represents the query parameters for building a play queue.
type QueueRequest struct {
	Mode       string `query:"mode" validate:"omitempty,oneof=live recorded"`
	PlaylistID string `query:"playlist_id" validate:"omitempty,youtubeid"`
	VideoID    string `query:"video_id" validate:"omitempty,youtubeid"`
}

// ToDomain converts QueueRequest to domain.QueueRequest.
// A playlist or video selection implies recorded mode. When both are set
// the video wins, which is decided by domain.BuildQueue.
func (r *QueueRequest) ToDomain() domain.QueueRequest {
	mode := domain.Mode(r.Mode)
	if mode == "" {
		mode = domain.ModeLive
		if r.PlaylistID != "" || r.VideoID != "" {
			mode = domain.ModeRecorded
		}
	}

	return domain.QueueRequest{
		Mode:       mode,
		PlaylistID: r.PlaylistID,
		VideoID:    r.VideoID,
	}
}
