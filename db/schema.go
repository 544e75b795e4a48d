package db

import (
	"context"
	"fmt"

	"taskboard-api/config"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL,
		profile_image VARCHAR(255) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_users_role FOREIGN KEY (role) REFERENCES roles(name) ON UPDATE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS task_manager (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		completed BOOLEAN DEFAULT false,
		status ENUM('actividades', 'enProceso', 'realizadas', 'cancelado') DEFAULT 'actividades',
		priority ENUM('baja', 'media', 'alta') DEFAULT 'media',
		tags JSON,
		color VARCHAR(7) DEFAULT '#3b82f6',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_users (
		task_id INT NOT NULL,
		user_id INT NOT NULL,
		PRIMARY KEY (task_id, user_id),
		FOREIGN KEY (task_id) REFERENCES task_manager(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL REFERENCES roles(name) ON UPDATE CASCADE,
		profile_image TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_manager (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		completed BOOLEAN DEFAULT FALSE,
		status TEXT CHECK(status IN ('actividades', 'enProceso', 'realizadas', 'cancelado')) DEFAULT 'actividades',
		priority TEXT CHECK(priority IN ('baja', 'media', 'alta')) DEFAULT 'media',
		tags TEXT,
		color TEXT DEFAULT '#3b82f6',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_users (
		task_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		PRIMARY KEY (task_id, user_id),
		FOREIGN KEY (task_id) REFERENCES task_manager(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

// Migrate crea las tablas que falten. Es idempotente.
func (d *Database) Migrate(ctx context.Context) error {
	var schema []string
	switch d.Driver {
	case config.DriverMySQL:
		schema = mysqlSchema
	case config.DriverSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("driver de base de datos no soportado: %q", d.Driver)
	}

	for _, stmt := range schema {
		if _, err := d.Conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creando tablas: %w", err)
		}
	}
	return nil
}
