package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"birdcams-tv/internal/transport/httpserver/dto"
)

// Recover returns a middleware that recovers from panics.
// JSON routes get an ErrorResponse; the kiosk page gets a plain 500.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Path()),
					zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
				)

				c.Status(fiber.StatusInternalServerError)
				if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
					err = c.SendString("Something went wrong. Please try again shortly.")
					return
				}

				err = c.JSON(dto.ErrorResponse{
					Error: "internal server error",
					Code:  "PANIC",
				})
			}
		}()

		return c.Next()
	}
}
