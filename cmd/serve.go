package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard-api/db"
	"taskboard-api/pkg"
	"taskboard-api/routes"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Arranca el servidor HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error cerrando la base de datos", "error", err)
		}
	}()

	if cfg.JwtSecret == "secreto123" {
		slog.Warn("JWT_SECRET no configurado, se usa el secreto por defecto")
	}

	app := routes.NewApp(routes.NewHandler(cfg, database, pkg.NewTokenManager(cfg.JwtSecret)))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Servidor escuchando", "port", cfg.Port, "production", cfg.Production)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error en el servidor: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Apagando el servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("error apagando el servidor: %w", err)
	}

	return nil
}

// bootstrap abre la base de datos, crea las tablas y, fuera de producción,
// los roles y el administrador por defecto
func bootstrap(ctx context.Context) (*db.Database, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	if !cfg.Production {
		if err := seed(ctx, database, false); err != nil {
			database.Close()
			return nil, err
		}
	}

	return database, nil
}
