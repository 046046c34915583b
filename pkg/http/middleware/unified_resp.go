package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-atlas/atlas/internal/engine/consts"
	httpx "github.com/go-atlas/atlas/pkg/http"
)

// UnifiedResponseMiddleware turns handler Locals into the unified response
// envelope. Handlers set c.Locals(consts.DETAIL, value) for payloads or
// c.Locals(consts.OPERATION, "") for result-only responses.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		// a handler that already wrote a body (error helpers) is left alone
		if len(c.Response().Body()) > 0 {
			return nil
		}

		if detail := c.Locals(consts.DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}

		if c.Locals(consts.OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}

		return nil
	}
}
