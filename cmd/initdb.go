package main

import (
	"context"
	"log/slog"

	"taskboard-api/db"
	"taskboard-api/models"

	"github.com/spf13/cobra"
)

// Desarrolladores de ejemplo que crea init-db --demo
var demoUsers = []string{"dev1", "dev2"}

const demoPassword = "Dev1234*"

var demo bool

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Crea la base de datos, las tablas, los roles y el usuario administrador",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}

		if err := seed(ctx, database, demo); err != nil {
			return err
		}

		slog.Info("Inicialización completada", "database", cfg.DBName)
		return nil
	},
}

func init() {
	initDBCmd.Flags().BoolVar(&demo, "demo", false, "crea también los usuarios de ejemplo dev1 y dev2")
}

func seed(ctx context.Context, database *db.Database, withDemo bool) error {
	if err := database.SeedRoles(ctx, db.DefaultRoles); err != nil {
		return err
	}

	if _, err := database.EnsureUser(ctx, cfg.DefaultAdminUsername, cfg.DefaultAdminPassword, models.AdminRole); err != nil {
		return err
	}

	if !withDemo {
		return nil
	}
	for _, username := range demoUsers {
		if _, err := database.EnsureUser(ctx, username, demoPassword, "dev"); err != nil {
			return err
		}
	}
	return nil
}
