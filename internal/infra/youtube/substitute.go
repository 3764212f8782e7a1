package youtube

// Substitute payloads served when no API key is configured or a call fails.

func thumb(videoID string) Thumbnails {
	return Thumbnails{Medium: Thumbnail{URL: "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg"}}
}

// SubstituteLiveStreams returns the fixed live-stream search payload.
func SubstituteLiveStreams() SearchResponse {
	entries := []struct{ id, title string }{
		{"dQw4w9WgXcQ", "Live Cornell Bird Cam - Red-tailed Hawk"},
		{"jNQXAC9IVRw", "Live Cornell Bird Cam - House Finch"},
	}

	resp := SearchResponse{Items: make([]SearchItem, len(entries))}
	for i, e := range entries {
		resp.Items[i].ID.VideoID = e.id
		resp.Items[i].Snippet.Title = e.title
		resp.Items[i].Snippet.Thumbnails = thumb(e.id)
	}

	return resp
}

// SubstitutePlaylists returns the fixed playlists payload.
func SubstitutePlaylists() PlaylistsResponse {
	entries := []struct{ id, title string }{
		{"PLrAXtmRdnEQy8PPaQ6OAz5KWRqkbG3v4x", "Red-tailed Hawk"},
		{"PLrAXtmRdnEQy8PPaQ6OAz5KWRqkbG3v4y", "House Finch"},
		{"PLrAXtmRdnEQy8PPaQ6OAz5KWRqkbG3v4z", "Blue Jay"},
	}

	resp := PlaylistsResponse{Items: make([]PlaylistItem, len(entries))}
	for i, e := range entries {
		resp.Items[i].ID = e.id
		resp.Items[i].Snippet.Title = e.title
	}

	return resp
}

// SubstitutePlaylistItems returns the fixed playlist items payload.
// The same two videos are served for every playlist.
func SubstitutePlaylistItems() PlaylistItemsResponse {
	entries := []struct{ id, title string }{
		{"9bZkp7q19f0", "Red-tailed Hawk Nest Cam Highlights"},
		{"gCKhktcbfQM", "Red-tailed Hawk Feeding"},
	}

	resp := PlaylistItemsResponse{Items: make([]PlaylistEntry, len(entries))}
	for i, e := range entries {
		t := thumb(e.id)
		resp.Items[i].Snippet.ResourceID.VideoID = e.id
		resp.Items[i].Snippet.Title = e.title
		resp.Items[i].Snippet.Thumbnails = &t
	}

	return resp
}
