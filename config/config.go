package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	Port                 string
	Production           bool
	JwtSecret            string
	DBDriver             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DefaultAdminUsername string
	DefaultAdminPassword string
	FrontendURLs         []string
	UploadPath           string
}

// LoadConfig lee el .env (si existe) y las variables de entorno
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No se encontró archivo .env, usando variables de entorno")
	}

	return Config{
		Port:                 getEnv("PORT", "3001"),
		Production:           getEnv("PRODUCTION", "false") == "true",
		JwtSecret:            getEnv("JWT_SECRET", "secreto123"),
		DBDriver:             getEnv("DB_DRIVER", DriverMySQL),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "3306"),
		DBUser:               getEnv("DB_USER", "root"),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBName:               getEnv("DB_NAME", "task_manager"),
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "Login2025*"),
		FrontendURLs:         splitList(getEnv("FRONTEND_URLS", "http://localhost:5173")),
		UploadPath:           getEnv("UPLOAD_PATH", "uploads"),
	}
}

// DatabaseDSN construye el DSN del driver configurado. Con withDB en false
// (solo MySQL) se conecta al servidor sin seleccionar base de datos.
func (c Config) DatabaseDSN(withDB bool) (string, error) {
	switch c.DBDriver {
	case DriverMySQL:
		m := mysql.NewConfig()
		m.User = c.DBUser
		m.Passwd = c.DBPassword
		m.Net = "tcp"
		m.Addr = c.DBHost + ":" + c.DBPort
		if withDB {
			m.DBName = c.DBName
		}
		m.ParseTime = true
		m.Loc = time.UTC
		// UPDATE sin cambios reales debe contar la fila como afectada
		m.ClientFoundRows = true
		return m.FormatDSN(), nil
	case DriverSQLite:
		return "file:" + c.DBName + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("driver de base de datos no soportado: %q", c.DBDriver)
	}
}

// getEnv obtiene una variable de entorno o usa un valor por defecto
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
