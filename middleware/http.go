package middleware

import (
	pkgHTTP "github.com/gestionpro/lib-license-go/pkg/net/http"
	"github.com/gofiber/fiber/v2"
)

// Middleware creates a Fiber middleware that refuses requests while no valid
// license is active. The first call performs the startup validation.
func (c *LicenseClient) Middleware() fiber.Handler {
	c.startupValidation()

	return func(ctx *fiber.Ctx) error {
		if err := c.checkLicense(); err != nil {
			c.logger.Warnf("Request to %s refused: %v", ctx.Path(), err)

			return pkgHTTP.WithError(ctx, err)
		}

		return ctx.Next()
	}
}
