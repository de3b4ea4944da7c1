package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware records request counts and latency labelled by the matched
// route pattern, not the raw path, to keep label cardinality bounded.
// Handler errors are rendered here, as fiber's logger middleware does, so the
// recorded status is the one sent to the client.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		if err := ctx.Next(); err != nil {
			if herr := ctx.App().ErrorHandler(ctx, err); herr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := ctx.Route().Path
		code := strconv.Itoa(ctx.Response().StatusCode())
		HTTPRequests.WithLabelValues(ctx.Method(), route, code).Inc()
		HTTPDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}
