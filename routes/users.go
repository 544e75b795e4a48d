package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskboard-api/db"
	"taskboard-api/models"
	"taskboard-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// Llega como multipart (con la imagen de perfil opcional) o como JSON
type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"notblank"`
	Password string `json:"password" form:"password" validate:"notblank"`
	Role     string `json:"role" form:"role" validate:"notblank"`
}

type UpdateUserRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// GetUsers obtiene todos los usuarios ordenados por nombre
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return internalError(c, "Error al obtener usuarios", err)
	}

	return c.JSON(users)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	user, err := h.Users.FindByID(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return notFound(c, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, "Error al obtener usuario", err)
	}

	return c.JSON(user)
}

// validRole comprueba que el rol esté dado de alta en la tabla de roles
func (h *Handler) validRole(c *fiber.Ctx, role string) (bool, error) {
	return h.Roles.Exists(c.UserContext(), role)
}

// discardImage borra una imagen recién subida cuando la operación no sigue adelante
func (h *Handler) discardImage(name *string) {
	if err := pkg.RemoveProfileImage(h.Config.UploadPath, name); err != nil {
		slog.Warn("No se pudo borrar la imagen de perfil", "error", err)
	}
}

// CreateUser crea un usuario (solo admin)
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var request CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Error al analizar el cuerpo de la solicitud")
	}
	request.Username = strings.TrimSpace(request.Username)
	request.Role = strings.TrimSpace(request.Role)

	if err := pkg.Validate(request).Err(); err != nil {
		return badRequest(c, "Faltan campos obligatorios")
	}

	ok, err := h.validRole(c, request.Role)
	if err != nil {
		return internalError(c, "Error al crear usuario", err)
	}
	if !ok {
		return badRequest(c, "Rol inválido")
	}

	_, err = h.Users.FindByUsername(c.UserContext(), request.Username)
	if err == nil {
		return conflict(c, "El usuario ya existe")
	}
	if !errors.Is(err, db.ErrNotFound) {
		return internalError(c, "Error al crear usuario", err)
	}

	image, err := pkg.SaveProfileImage(c, h.Config.UploadPath)
	if err != nil {
		var verr *pkg.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, err)
		}
		return internalError(c, "Error al guardar la imagen de perfil", err)
	}

	hash, err := pkg.GeneratePassword(request.Password)
	if err != nil {
		h.discardImage(image)
		return internalError(c, "Error al crear usuario", err)
	}

	user, err := h.Users.Create(c.UserContext(), models.User{
		Username:     request.Username,
		Password:     hash,
		Role:         request.Role,
		ProfileImage: image,
	})
	if err != nil {
		h.discardImage(image)
		switch {
		case errors.Is(err, db.ErrDuplicate):
			return conflict(c, "El usuario ya existe")
		case errors.Is(err, db.ErrForeignKey):
			return badRequest(c, "Rol inválido")
		}
		return internalError(c, "Error al crear usuario", err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Usuario creado exitosamente",
		"user":    user,
	})
}

// UpdateUser modifica solo los campos enviados (solo admin). Una imagen nueva
// sustituye a la anterior.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	var request UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Error al analizar el cuerpo de la solicitud")
	}

	var patch models.UserPatch
	if username := strings.TrimSpace(request.Username); username != "" {
		patch.Username = &username
	}
	if role := strings.TrimSpace(request.Role); role != "" {
		patch.Role = &role
	}
	_, fileErr := c.FormFile(pkg.ProfileImageField)
	if patch.Empty() && strings.TrimSpace(request.Password) == "" && fileErr != nil {
		return badRequest(c, "Debe enviar al menos un campo para actualizar")
	}

	current, err := h.Users.FindByID(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return notFound(c, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, "Error al actualizar usuario", err)
	}

	if patch.Role != nil {
		ok, err := h.validRole(c, *patch.Role)
		if err != nil {
			return internalError(c, "Error al actualizar usuario", err)
		}
		if !ok {
			return badRequest(c, "Rol inválido")
		}
	}

	if strings.TrimSpace(request.Password) != "" {
		hash, err := pkg.GeneratePassword(request.Password)
		if err != nil {
			return internalError(c, "Error al actualizar usuario", err)
		}
		patch.Password = &hash
	}

	image, err := pkg.SaveProfileImage(c, h.Config.UploadPath)
	if err != nil {
		var verr *pkg.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, err)
		}
		return internalError(c, "Error al guardar la imagen de perfil", err)
	}
	patch.ProfileImage = image

	if err := h.Users.Update(c.UserContext(), id, patch); err != nil {
		h.discardImage(image)
		switch {
		case errors.Is(err, db.ErrNotFound):
			return notFound(c, "Usuario no encontrado")
		case errors.Is(err, db.ErrDuplicate):
			return conflict(c, "El usuario ya existe")
		case errors.Is(err, db.ErrForeignKey):
			return badRequest(c, "Rol inválido")
		}
		return internalError(c, "Error al actualizar usuario", err)
	}

	if image != nil {
		h.discardImage(current.ProfileImage)
	}

	return c.JSON(fiber.Map{
		"message": "Usuario actualizado correctamente",
	})
}

// DeleteUser elimina un usuario y sus asignaciones (solo admin). El usuario
// administrador por defecto no se puede borrar.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	user, err := h.Users.FindByID(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return notFound(c, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, "Error al eliminar usuario", err)
	}

	if user.Username == h.Config.DefaultAdminUsername {
		return badRequest(c, "No puedes borrar el usuario administrador (el que viene en el archivo de configuración)")
	}

	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return notFound(c, "Usuario no encontrado")
		}
		return internalError(c, "Error al eliminar usuario", err)
	}

	h.discardImage(user.ProfileImage)

	return c.JSON(fiber.Map{
		"message": "Usuario eliminado correctamente",
	})
}
