package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskboard-api/models"
	"taskboard-api/pkg"
)

// DefaultRoles roles con los que arranca una instalación nueva
var DefaultRoles = []models.Role{
	{Name: models.AdminRole, Description: ptr("Administrador")},
	{Name: "dev", Description: ptr("Desarrollador")},
	{Name: "user", Description: ptr("Usuario")},
}

// SeedRoles crea los roles que todavía no existan
func (d *Database) SeedRoles(ctx context.Context, roles []models.Role) error {
	registry := NewRoleRegistry(d)
	for _, role := range roles {
		exists, err := registry.Exists(ctx, role.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := registry.Create(ctx, role.Name, role.Description); err != nil && !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("error creando rol %q: %w", role.Name, err)
		}
	}
	return nil
}

// EnsureUser crea el usuario si no existe. No modifica uno ya existente.
func (d *Database) EnsureUser(ctx context.Context, username, password, role string) (bool, error) {
	users := NewUserRepository(d)

	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		slog.Info("El usuario ya existe, no se creó uno nuevo", "username", username)
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	hash, err := pkg.GeneratePassword(password)
	if err != nil {
		return false, err
	}

	if _, err := users.Create(ctx, models.User{Username: username, Password: hash, Role: role}); err != nil {
		return false, fmt.Errorf("error creando usuario %q: %w", username, err)
	}

	slog.Info("Usuario creado", "username", username, "role", role)
	return true, nil
}

func ptr[T any](v T) *T {
	return &v
}
