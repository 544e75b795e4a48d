package main

import (
	"fmt"
	"log/slog"
	"os"

	"taskboard-api/config"

	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "API REST del gestor de tareas",
	Long: `API REST del gestor de tareas: autenticación con cookie JWT, usuarios,
roles, tags y tareas asignables con columnas de estado tipo Kanban.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		setupLogger(cfg.Production)
	},
	// Sin subcomando se arranca el servidor
	RunE: runServe,
}

// setupLogger usa JSON en producción y texto legible en desarrollo
func setupLogger(production bool) {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
