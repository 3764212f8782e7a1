package domain

import "fmt"

// Mode is the kiosk's viewing mode.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeRecorded Mode = "recorded"
)

// MaxShuffledQueue caps queues built from a random selection.
const MaxShuffledQueue = 20

// QueueRequest describes what the viewer selected.
type QueueRequest struct {
	Mode       Mode
	PlaylistID string
	VideoID    string
}

// Shuffler permutes n elements in place via swap.
// rand.Shuffle satisfies this signature.
type Shuffler func(n int, swap func(i, j int))

// Queue is an ordered play queue with a wrapping cursor.
type Queue struct {
	Items   []VideoItem `json:"items"`
	Current int         `json:"current"`
}

// BuildQueue builds the play queue for a selection.
//
//   - live: all live streams, shuffled, at most MaxShuffledQueue, with the
//     cursor on the selected stream when it made the cut
//   - recorded + video: the single matching video from any playlist, or empty
//   - recorded + playlist: that playlist's videos in order, or empty
//   - recorded: every playlist video, shuffled, at most MaxShuffledQueue
func BuildQueue(data AppData, req QueueRequest, shuffle Shuffler) (Queue, error) {
	switch req.Mode {
	case ModeLive, "":
		q := Queue{Items: shuffled(data.LiveStreams, shuffle)}
		if req.VideoID != "" {
			q.GoTo(req.VideoID)
		}
		return q, nil
	case ModeRecorded:
	default:
		return Queue{}, fmt.Errorf("unknown mode %q", req.Mode)
	}

	if req.VideoID != "" {
		if v, ok := data.FindVideo(req.VideoID); ok {
			return Queue{Items: []VideoItem{v}}, nil
		}
		return Queue{Items: []VideoItem{}}, nil
	}

	if req.PlaylistID != "" {
		p, ok := data.FindPlaylist(req.PlaylistID)
		if !ok {
			return Queue{Items: []VideoItem{}}, nil
		}
		items := make([]VideoItem, len(p.Videos))
		copy(items, p.Videos)
		return Queue{Items: items}, nil
	}

	var all []VideoItem
	for _, p := range data.Playlists {
		all = append(all, p.Videos...)
	}
	return Queue{Items: shuffled(all, shuffle)}, nil
}

func shuffled(src []VideoItem, shuffle Shuffler) []VideoItem {
	items := make([]VideoItem, len(src))
	copy(items, src)
	if shuffle != nil {
		shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	}
	if len(items) > MaxShuffledQueue {
		items = items[:MaxShuffledQueue]
	}
	return items
}

// Next advances the cursor, wrapping to the start. No-op on an empty queue.
func (q *Queue) Next() {
	if len(q.Items) == 0 {
		return
	}
	q.Current = (q.Current + 1) % len(q.Items)
}

// Previous moves the cursor back, wrapping to the end. No-op on an empty queue.
func (q *Queue) Previous() {
	if len(q.Items) == 0 {
		return
	}
	q.Current = (q.Current - 1 + len(q.Items)) % len(q.Items)
}

// GoTo moves the cursor to the given video if it is in the queue.
func (q *Queue) GoTo(videoID string) bool {
	i := q.IndexOf(videoID)
	if i < 0 {
		return false
	}
	q.Current = i
	return true
}

// IndexOf returns the position of videoID in the queue, or -1.
func (q *Queue) IndexOf(videoID string) int {
	for i, v := range q.Items {
		if v.ID == videoID {
			return i
		}
	}
	return -1
}

// CurrentItem returns the item under the cursor.
func (q *Queue) CurrentItem() (VideoItem, bool) {
	if len(q.Items) == 0 {
		return VideoItem{}, false
	}
	return q.Items[q.Current], true
}
