package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"taskboard-api/models"
)

type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, password, role, profile_image, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var image sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Role, &image, &createdAt); err != nil {
		return nil, err
	}
	if image.Valid {
		user.ProfileImage = &image.String
	}
	user.CreatedAt = createdAt.Time
	return &user, nil
}

// FindByUsername búsqueda exacta; ErrNotFound si no existe
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.Conn.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.Conn.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

// List devuelve todos los usuarios ordenados por nombre
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Conn.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// Create inserta el usuario; la contraseña debe llegar ya hasheada
func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	res, err := r.db.Conn.ExecContext(ctx,
		"INSERT INTO users (username, password, role, profile_image) VALUES (?, ?, ?, ?)",
		user.Username, user.Password, user.Role, user.ProfileImage,
	)
	if err != nil {
		return nil, classify(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Update aplica solo los campos presentes en el patch
func (r *UserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	var sets []string
	var args []any

	if patch.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.Password != nil {
		sets = append(sets, "password = ?")
		args = append(args, *patch.Password)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *patch.Role)
	}
	if patch.ProfileImage != nil {
		sets = append(sets, "profile_image = ?")
		args = append(args, *patch.ProfileImage)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db.Conn.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return classify(err)
	}

	return expectAffected(res)
}

// Delete borra el usuario; sus asignaciones a tareas se borran en cascada
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Conn.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}

	return expectAffected(res)
}
