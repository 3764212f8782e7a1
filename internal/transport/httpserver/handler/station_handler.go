package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"birdcams-tv/internal/domain"
	"birdcams-tv/internal/transport/httpserver/dto"
	"birdcams-tv/internal/validator"
)

// StationHandler handles play queue and playlist requests.
type StationHandler struct {
	station   Station
	validator *validator.Validator
	logger    *zap.Logger
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(station Station, v *validator.Validator, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		station:   station,
		validator: v,
		logger:    logger,
	}
}

// Queue handles GET /api/v1/station/queue
func (h *StationHandler) Queue(c *fiber.Ctx) error {
	var req dto.QueueRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	queue, err := h.station.Queue(c.Context(), req.ToDomain())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_SELECTION",
		})
	}

	return c.JSON(dto.FromQueue(queue))
}

// Playlist handles GET /api/v1/playlists/:id
func (h *StationHandler) Playlist(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	playlist, err := h.station.Playlist(c.Context(), id)
	if errors.Is(err, domain.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "playlist not found",
			Code:  "NOT_FOUND",
		})
	}
	if err != nil {
		h.logger.Error("get playlist failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get playlist",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(playlist)
}
