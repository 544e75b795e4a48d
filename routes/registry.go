package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"taskboard-api/db"
	"taskboard-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type RegistryRequest struct {
	Name        string  `json:"name" validate:"notblank"`
	Description *string `json:"description"`
}

// registryRoutes son los handlers CRUD de una tabla de nombres (roles o tags).
// key es la clave JSON con la que se devuelve la entrada creada.
type registryRoutes struct {
	store  RegistryStore
	noun   string
	plural string
	title  string
	key    string
}

func (h *Handler) RoleRoutes() *registryRoutes {
	return &registryRoutes{store: h.Roles, noun: "rol", plural: "roles", title: "Rol", key: "role"}
}

func (h *Handler) TagRoutes() *registryRoutes {
	return &registryRoutes{store: h.Tags, noun: "tag", plural: "tags", title: "Tag", key: "tag"}
}

func (r *registryRoutes) parse(c *fiber.Ctx) (string, *string, error) {
	var request RegistryRequest
	if err := c.BodyParser(&request); err != nil {
		return "", nil, pkg.NewValidationError("Error al analizar el cuerpo de la solicitud")
	}
	if err := pkg.Validate(request).Err(); err != nil {
		return "", nil, pkg.NewValidationError(fmt.Sprintf("El nombre del %s es obligatorio", r.noun))
	}

	// una descripción vacía se guarda como NULL
	description := request.Description
	if description != nil && strings.TrimSpace(*description) == "" {
		description = nil
	}

	return strings.TrimSpace(request.Name), description, nil
}

func (r *registryRoutes) List(c *fiber.Ctx) error {
	entries, err := r.store.List(c.UserContext())
	if err != nil {
		return internalError(c, "Error al obtener "+r.plural, err)
	}
	return c.JSON(entries)
}

func (r *registryRoutes) Get(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	entry, err := r.store.Get(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return notFound(c, r.title+" no encontrado")
	}
	if err != nil {
		return internalError(c, "Error al obtener "+r.noun, err)
	}
	return c.JSON(entry)
}

func (r *registryRoutes) Create(c *fiber.Ctx) error {
	name, description, err := r.parse(c)
	if err != nil {
		return validationFailed(c, err)
	}

	entry, err := r.store.Create(c.UserContext(), name, description)
	if errors.Is(err, db.ErrDuplicate) {
		return conflict(c, fmt.Sprintf("El %s ya existe", r.noun))
	}
	if err != nil {
		return internalError(c, "Error al crear "+r.noun, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": r.title + " creado correctamente",
		r.key:     entry,
	})
}

func (r *registryRoutes) Update(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	name, description, err := r.parse(c)
	if err != nil {
		return validationFailed(c, err)
	}

	err = r.store.Update(c.UserContext(), id, name, description)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return notFound(c, r.title+" no encontrado")
	case errors.Is(err, db.ErrDuplicate):
		return conflict(c, fmt.Sprintf("El %s ya existe", r.noun))
	case err != nil:
		return internalError(c, "Error al actualizar "+r.noun, err)
	}

	return c.JSON(fiber.Map{
		"message": r.title + " actualizado correctamente",
	})
}

func (r *registryRoutes) Delete(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	err := r.store.Delete(c.UserContext(), id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return notFound(c, r.title+" no encontrado")
	case errors.Is(err, db.ErrForeignKey):
		return conflict(c, fmt.Sprintf("El %s está asignado a uno o más usuarios", r.noun))
	case err != nil:
		return internalError(c, "Error al eliminar "+r.noun, err)
	}

	return c.JSON(fiber.Map{
		"message": r.title + " eliminado correctamente",
	})
}
