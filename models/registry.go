package models

// Entry es una fila de un registro simple (roles o tags)
type Entry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type Role = Entry

type Tag = Entry
