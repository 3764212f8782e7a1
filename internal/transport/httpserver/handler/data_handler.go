package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DataHandler serves the aggregate as JSON.
type DataHandler struct {
	aggregates AggregateResolver
	logger     *zap.Logger
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(aggregates AggregateResolver, logger *zap.Logger) *DataHandler {
	return &DataHandler{
		aggregates: aggregates,
		logger:     logger,
	}
}

// Get handles GET /api/v1/data
// Always 200: a failed fetch yields the empty aggregate.
func (h *DataHandler) Get(c *fiber.Ctx) error {
	res := h.aggregates.Resolve(c.Context())

	c.Set(OutcomeHeader, string(res.Outcome))
	c.Set(fiber.HeaderCacheControl, "no-cache")

	return c.JSON(res.Data)
}
