package youtube

// Operation identifies one of the three upstream calls.
type Operation int

const (
	OpLiveStreams Operation = iota + 1
	OpPlaylists
	OpPlaylistItems
)

// String returns the operation name used in logs.
func (o Operation) String() string {
	switch o {
	case OpLiveStreams:
		return "live_streams"
	case OpPlaylists:
		return "playlists"
	case OpPlaylistItems:
		return "playlist_items"
	default:
		return "unknown"
	}
}

// Path returns the Data API resource path for the operation.
func (o Operation) Path() string {
	switch o {
	case OpLiveStreams:
		return SearchEndpoint
	case OpPlaylists:
		return PlaylistsEndpoint
	case OpPlaylistItems:
		return PlaylistItemsEndpoint
	default:
		return ""
	}
}

// Result caps per operation.
const (
	LiveStreamsLimit   = 10
	PlaylistsLimit     = 20
	PlaylistItemsLimit = 50
)
