package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"taskboard-api/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Database es la conexión compartida por todos los repositorios. Se crea una
// vez al arrancar y se cierra al apagar el servidor.
type Database struct {
	Conn   *sql.DB
	Driver string
}

// querier lo cumplen tanto *sql.DB como *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre la base de datos configurada. En MySQL crea antes la base de
// datos si no existe.
func Open(ctx context.Context, cfg config.Config) (*Database, error) {
	if cfg.DBDriver == config.DriverMySQL {
		if err := ensureDatabase(ctx, cfg); err != nil {
			return nil, err
		}
	}

	dsn, err := cfg.DatabaseDSN(true)
	if err != nil {
		return nil, err
	}

	return OpenDSN(ctx, cfg.DBDriver, dsn)
}

func OpenDSN(ctx context.Context, driver, dsn string) (*Database, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error abriendo la base de datos: %w", err)
	}

	switch driver {
	case config.DriverSQLite:
		// SQLite admite un único escritor; además ":memory:" es por conexión
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	default:
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.PingContext(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error cerrando la base de datos", "error", closeErr)
		}
		return nil, fmt.Errorf("la base de datos no responde: %w", err)
	}

	return &Database{Conn: conn, Driver: driver}, nil
}

func ensureDatabase(ctx context.Context, cfg config.Config) error {
	dsn, err := cfg.DatabaseDSN(false)
	if err != nil {
		return err
	}

	server, err := sql.Open(config.DriverMySQL, dsn)
	if err != nil {
		return fmt.Errorf("error conectando a MySQL: %w", err)
	}
	defer server.Close()

	if _, err := server.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+cfg.DBName+"`"); err != nil {
		return fmt.Errorf("error creando la base de datos %q: %w", cfg.DBName, err)
	}

	slog.Info("Base de datos verificada o creada", "database", cfg.DBName)
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.Conn.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.Conn.Close()
}

// withTx ejecuta fn dentro de una transacción; si fn falla se hace rollback
func (d *Database) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("error en rollback", "error", rbErr)
		}
		return err
	}

	return tx.Commit()
}
