package middleware

import (
	"errors"

	"taskboard-api/pkg"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected exige una cookie de sesión válida y deja la identidad del
// usuario en c.Locals(UserKey)
func JWTProtected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: secret},
		ContextKey:  "jwt",
		TokenLookup: "cookie:" + pkg.SessionCookie,
		Claims:      &pkg.Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("jwt").(*jwt.Token)
			if !ok {
				return unauthorized(c, "Token inválido o expirado")
			}
			claims, ok := token.Claims.(*pkg.Claims)
			if !ok {
				return unauthorized(c, "Token inválido o expirado")
			}
			c.Locals(UserKey, claims.Identity())
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(c, "No autorizado")
			}
			return unauthorized(c, "Token inválido o expirado")
		},
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
