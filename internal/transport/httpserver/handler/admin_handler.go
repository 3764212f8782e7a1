package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"birdcams-tv/internal/job"
	"birdcams-tv/internal/transport/httpserver/dto"
)

// AdminHandler handles cache maintenance requests.
type AdminHandler struct {
	rebuilder Rebuilder
	cache     CacheAdmin
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(rebuilder Rebuilder, cache CacheAdmin, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		rebuilder: rebuilder,
		cache:     cache,
		logger:    logger,
	}
}

// Rebuild handles POST /api/v1/admin/cache/rebuild
func (h *AdminHandler) Rebuild(c *fiber.Ctx) error {
	h.logger.Info("manual cache rebuild triggered")

	report, err := h.rebuilder.Rebuild(c.Context())
	if errors.Is(err, job.ErrRebuildInProgress) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REBUILD_IN_PROGRESS",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REBUILD_FAILED",
		})
	}

	return c.JSON(dto.FromRebuildReport(report))
}

// Status handles GET /api/v1/admin/cache
func (h *AdminHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.FromCacheStatus(h.cache.Status(c.Context())))
}

// Clear handles DELETE /api/v1/admin/cache
func (h *AdminHandler) Clear(c *fiber.Ctx) error {
	if err := h.cache.ClearCache(c.Context()); err != nil {
		h.logger.Error("clearing cache failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to clear cache",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
