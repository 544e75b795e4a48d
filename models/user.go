package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"-"`
	Role         string    `json:"role"` // referencia a roles.name
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserPatch contiene solo los campos que se quieren modificar, nil significa "sin cambios"
type UserPatch struct {
	Username     *string
	Password     *string // ya hasheada
	Role         *string
	ProfileImage *string
}

func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Password == nil && p.Role == nil && p.ProfileImage == nil
}

// Identity es lo que viaja dentro del token de sesión
type Identity struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

const AdminRole = "admin"

func (i Identity) IsAdmin() bool {
	return i.Role == AdminRole
}
