package routes

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"taskboard-api/config"
	"taskboard-api/db"
	"taskboard-api/models"
	"taskboard-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) error
	Delete(ctx context.Context, id int64) error
}

// RegistryStore lo implementan los roles y los tags
type RegistryStore interface {
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id int64) (*models.Entry, error)
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string, description *string) (*models.Entry, error)
	Update(ctx context.Context, id int64, name string, description *string) error
	Delete(ctx context.Context, id int64) error
}

type TaskStore interface {
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, task models.NewTask) (*models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) error
	Delete(ctx context.Context, id int64) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler reúne las dependencias de todas las rutas
type Handler struct {
	Config config.Config
	Tokens *pkg.TokenManager
	Users  UserStore
	Roles  RegistryStore
	Tags   RegistryStore
	Tasks  TaskStore
	DB     Pinger
}

func NewHandler(cfg config.Config, database *db.Database, tokens *pkg.TokenManager) *Handler {
	return &Handler{
		Config: cfg,
		Tokens: tokens,
		Users:  db.NewUserRepository(database),
		Roles:  db.NewRoleRegistry(database),
		Tags:   db.NewTagRegistry(database),
		Tasks:  db.NewTaskRepository(database),
		DB:     database,
	}
}

// internalError registra el detalle y devuelve al cliente solo un mensaje genérico
func internalError(c *fiber.Ctx, message string, err error) error {
	slog.Error(message, "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": message,
	})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": message,
	})
}

// validationFailed responde 400 con todas las reglas incumplidas en un solo mensaje
func validationFailed(c *fiber.Ctx, err error) error {
	var verr *pkg.ValidationError
	if errors.As(err, &verr) {
		return badRequest(c, strings.Join(verr.Messages, " "))
	}
	return badRequest(c, err.Error())
}

// ErrorHandler para los errores que no gestiona ninguna ruta (404 de Fiber, body demasiado grande...)
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Error en el servidor"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("Error no controlado", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
