// Package youtube implements the YouTube Data API v3 client for the kiosk.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"birdcams-tv/internal/domain"
	"birdcams-tv/internal/infra/provider"
)

// API resource paths, relative to the base URL.
const (
	SearchEndpoint        = "/youtube/v3/search"
	PlaylistsEndpoint     = "/youtube/v3/playlists"
	PlaylistItemsEndpoint = "/youtube/v3/playlistItems"
)

// DefaultChannelID is the Cornell Lab of Ornithology channel.
const DefaultChannelID = "UCZXZQxS3d6NpR-eH_gdDwYA"

// ErrNoAPIKey is reported when no credential is configured.
var ErrNoAPIKey = errors.New("youtube api key not configured")

// Config holds the client configuration.
type Config struct {
	provider.ClientConfig
	APIKey    string
	ChannelID string

	// SubstituteOnFailure serves the fixed sample payloads when a call fails.
	// When false, failures are returned to the caller.
	SubstituteOnFailure bool
}

// Client implements domain.VideoSource against the YouTube Data API.
type Client struct {
	name       string
	client     *resty.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	limiter    *rate.Limiter
	apiKey     string
	channelID  string
	substitute bool
	logger     *zap.Logger
}

// New creates a new YouTube client.
func New(cfg Config, logger *zap.Logger) *Client {
	channelID := cfg.ChannelID
	if channelID == "" {
		channelID = DefaultChannelID
	}

	return &Client{
		name:       "youtube",
		client:     provider.NewRestyClient(cfg.ClientConfig),
		cb:         provider.NewCircuitBreaker[[]byte]("youtube", cfg.CB, logger),
		limiter:    provider.NewRateLimiter(cfg.Rate),
		apiKey:     cfg.APIKey,
		channelID:  channelID,
		substitute: cfg.SubstituteOnFailure,
		logger:     logger,
	}
}

// Name returns the upstream identifier.
func (c *Client) Name() string {
	return c.name
}

// HasAPIKey reports whether live data can be requested at all.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// FetchLiveStreams returns the channel's currently live videos.
func (c *Client) FetchLiveStreams(ctx context.Context) ([]domain.VideoItem, error) {
	resp, err := request(ctx, c, OpLiveStreams, map[string]string{
		"part":       "snippet",
		"channelId":  c.channelID,
		"eventType":  "live",
		"type":       "video",
		"maxResults": strconv.Itoa(LiveStreamsLimit),
	}, SubstituteLiveStreams)
	if err != nil {
		return nil, err
	}

	return resp.ToDomain(), nil
}

// FetchPlaylists returns the channel's playlists without their videos.
func (c *Client) FetchPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	resp, err := request(ctx, c, OpPlaylists, map[string]string{
		"part":       "snippet",
		"channelId":  c.channelID,
		"maxResults": strconv.Itoa(PlaylistsLimit),
	}, SubstitutePlaylists)
	if err != nil {
		return nil, err
	}

	return resp.ToDomain(), nil
}

// FetchPlaylistItems returns the videos of a playlist.
func (c *Client) FetchPlaylistItems(ctx context.Context, playlistID string) ([]domain.VideoItem, error) {
	resp, err := request(ctx, c, OpPlaylistItems, map[string]string{
		"part":       "snippet",
		"playlistId": playlistID,
		"maxResults": strconv.Itoa(PlaylistItemsLimit),
	}, SubstitutePlaylistItems)
	if err != nil {
		return nil, err
	}

	return resp.ToDomain(), nil
}

// HealthCheck reports whether live data is currently obtainable.
func (c *Client) HealthCheck(_ context.Context) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	if c.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("youtube api unavailable: %w", gobreaker.ErrOpenState)
	}

	return nil
}

// request performs op and decodes the body into T, falling back to the
// substitute payload when there is no key, or when the call fails and
// substitution is enabled.
func request[T any](ctx context.Context, c *Client, op Operation, params map[string]string, fallback func() T) (T, error) {
	if c.apiKey == "" {
		c.logger.Warn("youtube api key not found, using substitute data",
			zap.Stringer("operation", op),
		)

		return fallback(), nil
	}

	var out T
	err := c.do(ctx, op, params, &out)
	if err == nil {
		return out, nil
	}

	c.logger.Error("youtube api fetch failed",
		zap.Stringer("operation", op),
		zap.Error(err),
		zap.String("state", c.cb.State().String()),
	)

	if c.substitute {
		return fallback(), nil
	}

	var zero T
	return zero, fmt.Errorf("fetching %s from youtube: %w", op, err)
}

func (c *Client) do(ctx context.Context, op Operation, params map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("key", c.apiKey).
			Get(op.Path())
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, apiError(r.StatusCode())
		}

		return r.Body(), nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", op, err)
	}

	return nil
}

func apiError(statusCode int) error {
	switch statusCode {
	case 400:
		return fmt.Errorf("youtube api rejected the request (status %d)", statusCode)
	case 403:
		return fmt.Errorf("youtube api access denied or quota exceeded (status %d)", statusCode)
	case 404:
		return fmt.Errorf("youtube api resource not found (status %d)", statusCode)
	case 429:
		return fmt.Errorf("youtube api rate limit exceeded (status %d)", statusCode)
	default:
		return fmt.Errorf("youtube api returned status %d", statusCode)
	}
}
