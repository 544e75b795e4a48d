package db

import (
	"context"
	"database/sql"
	"errors"

	"taskboard-api/models"
)

// Registry es una tabla simple de nombres únicos con descripción opcional.
// La usan tanto los roles como los tags.
type Registry struct {
	db    *Database
	table string
}

func NewRoleRegistry(db *Database) *Registry {
	return &Registry{db: db, table: "roles"}
}

func NewTagRegistry(db *Database) *Registry {
	return &Registry{db: db, table: "tags"}
}

// List devuelve todas las entradas ordenadas por nombre
func (r *Registry) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.db.Conn.QueryContext(ctx, "SELECT id, name, description FROM "+r.table+" ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

func (r *Registry) Get(ctx context.Context, id int64) (*models.Entry, error) {
	row := r.db.Conn.QueryRowContext(ctx, "SELECT id, name, description FROM "+r.table+" WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// Exists comprueba si hay una entrada con ese nombre exacto
func (r *Registry) Exists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.Conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.table+" WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserta una entrada; ErrDuplicate si el nombre ya existe
func (r *Registry) Create(ctx context.Context, name string, description *string) (*models.Entry, error) {
	res, err := r.db.Conn.ExecContext(ctx, "INSERT INTO "+r.table+" (name, description) VALUES (?, ?)", name, description)
	if err != nil {
		return nil, classify(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Entry{ID: id, Name: name, Description: description}, nil
}

func (r *Registry) Update(ctx context.Context, id int64, name string, description *string) error {
	res, err := r.db.Conn.ExecContext(ctx, "UPDATE "+r.table+" SET name = ?, description = ? WHERE id = ?", name, description, id)
	if err != nil {
		return classify(err)
	}

	return expectAffected(res)
}

// Delete borra la entrada. Un rol asignado a algún usuario devuelve ErrForeignKey.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Conn.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}

	return expectAffected(res)
}

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	var entry models.Entry
	var description sql.NullString
	if err := row.Scan(&entry.ID, &entry.Name, &description); err != nil {
		return nil, err
	}
	if description.Valid {
		entry.Description = &description.String
	}
	return &entry, nil
}
