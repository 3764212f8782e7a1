package youtube

import "birdcams-tv/internal/domain"

// Thumbnails holds the thumbnail variants we read.
type Thumbnails struct {
	Medium Thumbnail `json:"medium"`
}

// Thumbnail is a single thumbnail variant.
type Thumbnail struct {
	URL string `json:"url"`
}

// SearchResponse is the search.list response.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

// SearchItem is a single search result.
type SearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title      string     `json:"title"`
		Thumbnails Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

// PlaylistsResponse is the playlists.list response.
type PlaylistsResponse struct {
	Items []PlaylistItem `json:"items"`
}

// PlaylistItem is a single playlist resource.
type PlaylistItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title string `json:"title"`
	} `json:"snippet"`
}

// PlaylistItemsResponse is the playlistItems.list response.
type PlaylistItemsResponse struct {
	Items []PlaylistEntry `json:"items"`
}

// PlaylistEntry is a single video entry of a playlist.
type PlaylistEntry struct {
	Snippet struct {
		ResourceID struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
		Title      string      `json:"title"`
		Thumbnails *Thumbnails `json:"thumbnails,omitempty"`
	} `json:"snippet"`
}

// ToDomain converts search results to video items.
// Results without a video ID are dropped.
func (r *SearchResponse) ToDomain() []domain.VideoItem {
	items := make([]domain.VideoItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, domain.VideoItem{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.Medium.URL,
		})
	}

	return items
}

// ToDomain converts playlists to shells with no videos.
func (r *PlaylistsResponse) ToDomain() []domain.Playlist {
	playlists := make([]domain.Playlist, 0, len(r.Items))
	for _, item := range r.Items {
		playlists = append(playlists, domain.Playlist{
			ID:     item.ID,
			Title:  item.Snippet.Title,
			Videos: []domain.VideoItem{},
		})
	}

	return playlists
}

// ToDomain converts playlist entries to video items.
// Entries without a resource video ID are dropped; a missing thumbnail becomes "".
func (r *PlaylistItemsResponse) ToDomain() []domain.VideoItem {
	items := make([]domain.VideoItem, 0, len(r.Items))
	for _, entry := range r.Items {
		videoID := entry.Snippet.ResourceID.VideoID
		if videoID == "" {
			continue
		}

		thumbnail := ""
		if entry.Snippet.Thumbnails != nil {
			thumbnail = entry.Snippet.Thumbnails.Medium.URL
		}

		items = append(items, domain.VideoItem{
			ID:        videoID,
			Title:     entry.Snippet.Title,
			Thumbnail: thumbnail,
		})
	}

	return items
}
