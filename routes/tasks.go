package routes

import (
	"errors"
	"net/http"
	"strings"

	"taskboard-api/db"
	"taskboard-api/models"
	"taskboard-api/pkg"

	"github.com/gofiber/fiber/v2"
)

const invalidUserIDs = "user_ids debe ser un array de números válidos."

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"oneof=actividades enProceso realizadas cancelado"`
	Priority    string `json:"priority" validate:"oneof=baja media alta"`
	Tags        any    `json:"tags"`     // lista o string con JSON
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	UserIDs     any    `json:"user_ids"` // lista de ids, números o strings numéricos
}

// UpdateTaskRequest: nil significa que el campo no se envió
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Status      *string `json:"status" validate:"omitnil,oneof=actividades enProceso realizadas cancelado"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=baja media alta"`
	Tags        any     `json:"tags"`
	Color       *string `json:"color" validate:"omitnil,hexcolor"`
	UserIDs     any     `json:"user_ids"`
}

func validationErrors(c *fiber.Ctx, verr *pkg.ValidationError) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"errors": verr.Messages,
	})
}

// GetTasks devuelve todas las tareas con sus usuarios asignados
func (h *Handler) GetTasks(c *fiber.Ctx) error {
	tasks, err := h.Tasks.List(c.UserContext())
	if err != nil {
		return internalError(c, "Error al obtener las tareas", err)
	}

	return c.JSON(tasks)
}

// CreateTask valida todos los campos a la vez y devuelve la lista completa de errores
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var request CreateTaskRequest
	if err := c.BodyParser(&request); err != nil {
		return validationErrors(c, pkg.NewValidationError("Cuerpo de la petición inválido."))
	}

	verr := pkg.Validate(request)
	userIDs, ok := pkg.ParseIDs(request.UserIDs)
	if !ok {
		verr.Add(invalidUserIDs)
	}
	if verr.Err() != nil {
		return validationErrors(c, verr)
	}

	userIDs = db.UniqueIDs(userIDs)
	task, err := h.Tasks.Create(c.UserContext(), models.NewTask{
		Title:       strings.TrimSpace(request.Title),
		Description: request.Description,
		Status:      request.Status,
		Priority:    request.Priority,
		Tags:        pkg.NormalizeTags(request.Tags),
		Color:       request.Color,
		UserIDs:     userIDs,
	})
	if errors.Is(err, db.ErrForeignKey) {
		return validationErrors(c, pkg.NewValidationError("Alguno de los usuarios asignados no existe."))
	}
	if err != nil {
		return internalError(c, "Error al crear la tarea", err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"task":           task,
		"assigned_users": userIDs,
	})
}

// UpdateTask aplica una actualización parcial. Si llega user_ids, sustituye
// todos los usuarios asignados.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	var request UpdateTaskRequest
	if err := c.BodyParser(&request); err != nil {
		return validationErrors(c, pkg.NewValidationError("Cuerpo de la petición inválido."))
	}

	patch := models.TaskPatch{
		Title:       request.Title,
		Description: request.Description,
		Completed:   request.Completed,
		Status:      request.Status,
		Priority:    request.Priority,
		Color:       request.Color,
	}
	if request.Tags != nil {
		tags := pkg.NormalizeTags(request.Tags)
		patch.Tags = &tags
	}

	verr := pkg.Validate(request)
	if request.UserIDs != nil {
		userIDs, ok := pkg.ParseIDs(request.UserIDs)
		if !ok {
			verr.Add(invalidUserIDs)
		}
		userIDs = db.UniqueIDs(userIDs)
		patch.UserIDs = &userIDs
	}

	if patch.Empty() {
		return badRequest(c, "Se requiere al menos un campo para actualizar.")
	}
	if verr.Err() != nil {
		return validationErrors(c, verr)
	}

	err := h.Tasks.Update(c.UserContext(), id, patch)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return notFound(c, "Tarea no encontrada.")
	case errors.Is(err, db.ErrForeignKey):
		return validationErrors(c, pkg.NewValidationError("Alguno de los usuarios asignados no existe."))
	case err != nil:
		return internalError(c, "Error al actualizar la tarea", err)
	}

	return c.JSON(fiber.Map{
		"message": "Tarea actualizada correctamente.",
	})
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	id, ok := pkg.ParseID(c.Params("id"))
	if !ok {
		return badRequest(c, "ID inválido")
	}

	err := h.Tasks.Delete(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return notFound(c, "Tarea no encontrada.")
	}
	if err != nil {
		return internalError(c, "Error al eliminar la tarea", err)
	}

	return c.JSON(fiber.Map{
		"message": "Tarea eliminada correctamente.",
	})
}
