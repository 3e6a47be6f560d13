package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware that gates a route on the caller's role.
// Runs after JWTMiddleware, which stores the role in locals.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerRole, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		if callerRole != role {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
