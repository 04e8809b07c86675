package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamat/webgate/internal/router"
)

// GuardMiddleware runs the navigation guard before any site view. A
// redirect decision becomes an HTTP 302; proceed falls through to the
// view handler.
func GuardMiddleware(guard *router.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := guard.Evaluate(c.UserContext(), c.OriginalURL())
		switch decision.Action {
		case router.ActionRedirect:
			return c.Redirect(decision.Target, fiber.StatusFound)
		case router.ActionStale:
			// A newer attempt superseded this one; send the client back
			// through the guard instead of applying a stale verdict.
			return c.Redirect(c.OriginalURL(), fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}
