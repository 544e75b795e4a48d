package routes

import (
	"errors"
	"net/http"

	"taskboard-api/db"
	"taskboard-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login comprueba las credenciales y deja el token de sesión en una cookie HTTP-only
func (h *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Error al analizar el cuerpo de la solicitud")
	}
	if request.Username == "" || request.Password == "" {
		return badRequest(c, "Usuario y contraseña requeridos.")
	}

	// Recuperar el usuario de la base de datos
	user, err := h.Users.FindByUsername(c.UserContext(), request.Username)
	if errors.Is(err, db.ErrNotFound) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}
	if err != nil {
		return internalError(c, "Error en el servidor", err)
	}

	// Verificar la contraseña
	if !pkg.ComparePassword(user.Password, request.Password) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "Contraseña incorrecta",
		})
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return internalError(c, "Error al generar el token", err)
	}

	pkg.SetSessionCookie(c, token, h.Tokens.TTL(), h.Config.Production)
	return c.JSON(fiber.Map{
		"message": "Login exitoso",
		"user":    user,
	})
}

// Logout borra la cookie de sesión. El token sigue siendo válido hasta que expire.
func (h *Handler) Logout(c *fiber.Ctx) error {
	pkg.ClearSessionCookie(c, h.Config.Production)
	return c.JSON(fiber.Map{
		"message": "Logout exitoso",
	})
}

// Me devuelve la identidad guardada en la cookie de sesión
func (h *Handler) Me(c *fiber.Ctx) error {
	token := c.Cookies(pkg.SessionCookie)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "No autenticado",
		})
	}

	identity, err := h.Tokens.GetUserFromToken(token)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token inválido",
		})
	}

	return c.JSON(fiber.Map{
		"user": identity,
	})
}
