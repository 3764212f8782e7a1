package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// KioskHandler renders the kiosk page.
type KioskHandler struct {
	aggregates AggregateResolver
	logger     *zap.Logger
}

// NewKioskHandler creates a new KioskHandler.
func NewKioskHandler(aggregates AggregateResolver, logger *zap.Logger) *KioskHandler {
	return &KioskHandler{
		aggregates: aggregates,
		logger:     logger,
	}
}

// Render handles GET /
// The page is rendered with whatever data is available; an empty aggregate
// shows the empty-state instead of an error.
func (h *KioskHandler) Render(c *fiber.Ctx) error {
	res := h.aggregates.Resolve(c.Context())

	return c.Render("pages/kiosk", fiber.Map{
		"Title":       "BirdCams TV",
		"LiveStreams": res.Data.LiveStreams,
		"Playlists":   res.Data.Playlists,
		"Outcome":     string(res.Outcome),
		"Empty":       len(res.Data.LiveStreams) == 0 && len(res.Data.Playlists) == 0,
	}, "layouts/base")
}
