package models

import (
	"slices"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	Color       string    `json:"color"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UserIDs     []int64   `json:"user_ids"`
	UserNames   []string  `json:"user_names"`
}

// Columnas del tablero
const (
	StatusActividades = "actividades"
	StatusEnProceso   = "enProceso"
	StatusRealizadas  = "realizadas"
	StatusCancelado   = "cancelado"
)

const (
	PriorityBaja  = "baja"
	PriorityMedia = "media"
	PriorityAlta  = "alta"
)

const DefaultColor = "#3b82f6"

var (
	Statuses   = []string{StatusActividades, StatusEnProceso, StatusRealizadas, StatusCancelado}
	Priorities = []string{PriorityBaja, PriorityMedia, PriorityAlta}
)

func ValidStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

func ValidPriority(p string) bool {
	return slices.Contains(Priorities, p)
}

// NewTask son los datos ya validados para insertar una tarea
type NewTask struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Tags        []string
	Color       string
	UserIDs     []int64
}

// TaskPatch es una actualización parcial. Cada campo nil queda sin cambios.
// UserIDs no nil reemplaza el conjunto completo de usuarios asignados.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Status      *string
	Priority    *string
	Tags        *[]string
	Color       *string
	UserIDs     *[]int64
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Status == nil && p.Priority == nil && p.Tags == nil &&
		p.Color == nil && p.UserIDs == nil
}
