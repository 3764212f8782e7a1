// Package main runs a local stand-in for the YouTube Data API v3 serving the
// search, playlists and playlistItems shapes the kiosk consumes.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

//go:embed data.json
var jsonData []byte

type fixture struct {
	Live      []entry            `json:"live"`
	Playlists []entry            `json:"playlists"`
	Items     map[string][]entry `json:"items"`
}

type entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func thumbnails(videoID string) map[string]any {
	return map[string]any{
		"medium": map[string]any{"url": "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg"},
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	// Simulate network latency (50-200ms)
	time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

	if r.URL.Query().Get("key") == "" {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The request is missing a valid API key."}}`))
		log.Printf("[YouTube mock] %s %s - 403 missing key", r.Method, r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[YouTube mock] Write error: %v", err)
	}

	log.Printf("[YouTube mock] %s %s - 200 OK", r.Method, r.URL.Path)
}

func main() {
	var data fixture
	if err := json.Unmarshal(jsonData, &data); err != nil {
		log.Fatalf("[YouTube mock] bad fixture: %v", err)
	}

	http.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, 0, len(data.Live))
		for _, e := range data.Live {
			items = append(items, map[string]any{
				"id":      map[string]any{"kind": "youtube#video", "videoId": e.ID},
				"snippet": map[string]any{"title": e.Title, "thumbnails": thumbnails(e.ID)},
			})
		}
		writeJSON(w, r, map[string]any{"kind": "youtube#searchListResponse", "items": items})
	})

	http.HandleFunc("/youtube/v3/playlists", func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, 0, len(data.Playlists))
		for _, e := range data.Playlists {
			items = append(items, map[string]any{
				"id":      e.ID,
				"snippet": map[string]any{"title": e.Title},
			})
		}
		writeJSON(w, r, map[string]any{"kind": "youtube#playlistListResponse", "items": items})
	})

	http.HandleFunc("/youtube/v3/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		entries := data.Items[r.URL.Query().Get("playlistId")]
		items := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			items = append(items, map[string]any{
				"snippet": map[string]any{
					"title":      e.Title,
					"resourceId": map[string]any{"kind": "youtube#video", "videoId": e.ID},
					"thumbnails": thumbnails(e.ID),
				},
			})
		}
		writeJSON(w, r, map[string]any{"kind": "youtube#playlistItemListResponse", "items": items})
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[YouTube mock] Health write error: %v", err)
		}
	})

	log.Println("Mock YouTube Data API running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
