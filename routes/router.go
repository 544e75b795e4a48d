package routes

import (
	"slices"
	"strings"

	"taskboard-api/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp crea la aplicación Fiber con todas las rutas registradas
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "taskboard-api",
		ErrorHandler: ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// La cookie de sesión exige orígenes explícitos; con "*" no se envían credenciales
	origins := strings.Join(h.Config.FrontendURLs, ",")
	credentials := origins != "" && !slices.Contains(h.Config.FrontendURLs, "*")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: credentials,
		AllowHeaders:     "Origin,Content-Type,Accept,Content-Length,Accept-Language,Accept-Encoding,Connection",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	// Imágenes de perfil
	app.Static("/uploads", h.Config.UploadPath)

	session := middleware.JWTProtected(h.Tokens.Secret())
	validUser := middleware.ValidUser(h.Users)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             AUTH                                  |
	|                                                                   |
	------------------------------------------------------------------- */
	auth := app.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", h.Me)

	// Usuarios
	auth.Get("/getUsers", session, validUser, h.GetUsers) // Obtiene todos los usuarios
	auth.Get("/users/:id", session, validUser, h.GetUser) // Obtiene un usuario
	// ADMIN
	auth.Post("/create-user", session, validUser, middleware.IsAdmin, h.CreateUser) // Crea un usuario (multipart, imagen opcional)
	auth.Put("/users/:id", session, validUser, middleware.IsAdmin, h.UpdateUser)    // Actualiza un usuario
	auth.Delete("/users/:id", session, validUser, middleware.IsAdmin, h.DeleteUser) // Elimina un usuario

	api := app.Group("/api")

	// Status
	api.Get("/status", h.GetStatus)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                          ROLES Y TAGS                             |
	|                                                                   |
	------------------------------------------------------------------- */
	registries := []struct {
		path   string
		routes *registryRoutes
	}{
		{"/roles", h.RoleRoutes()},
		{"/tags", h.TagRoutes()},
	}
	for _, registry := range registries {
		r := registry.routes
		group := api.Group(registry.path, session, validUser)
		group.Get("/", r.List)
		group.Get("/:id", r.Get)
		group.Post("/", r.Create)
		group.Put("/:id", r.Update)
		group.Delete("/:id", r.Delete)
	}

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             TASKS                                 |
	|                                                                   |
	------------------------------------------------------------------- */
	tasks := api.Group("/tasks", session, validUser)
	tasks.Get("/", h.GetTasks)         // Obtiene todas las tareas con sus usuarios
	tasks.Post("/", h.CreateTask)      // Crea una tarea y asigna usuarios
	tasks.Put("/:id", h.UpdateTask)    // Actualización parcial, user_ids reemplaza los asignados
	tasks.Delete("/:id", h.DeleteTask) // Elimina una tarea

	return app
}
