package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"meal-tracker-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Settings is the configuration the server was started with.
var Settings Config

// Config holds everything the server reads from the environment.
type Config struct {
	DatabaseClient string
	DatabaseURL    string
	Port           string
	CookieSecure   bool
	// CORSOrigins lists origins allowed to call the API with the session cookie.
	CORSOrigins []string
	LogLevel    logger.LogLevel
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration, picking up a .env file when one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env file: %v", err)
	}

	return Config{
		DatabaseClient: strings.ToLower(getEnv("DATABASE_CLIENT", "sqlite")),
		DatabaseURL:    getEnv("DATABASE_URL", "meals.db"),
		Port:           getEnv("PORT", "3333"),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:       parseLogLevel(getEnv("DB_LOG_LEVEL", "warn")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Connect opens a gorm handle for the configured client. Postgres goes
// through a lib/pq pool so the pool limits can be tuned before gorm wraps it.
func Connect(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
	}

	switch cfg.DatabaseClient {
	case "sqlite", "sqlite3":
		db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg.DatabaseURL)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", cfg.DatabaseURL, err)
		}
		return db, nil
	case "pg", "postgres", "postgresql":
		sqlDB, err := openPostgresPool(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_CLIENT %q", cfg.DatabaseClient)
	}
}

// sqliteDSN turns on foreign keys; the meals -> users cascade depends on it.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func openPostgresPool(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	sqlDB.SetConnMaxLifetime(3 * time.Minute)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(30)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return sqlDB, nil
}

// Migrate creates the users and meals tables. Users must go first so the
// meals foreign key has something to point at.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Meal{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func InitDB(cfg Config) {
	var err error
	DB, err = Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Printf("Database connected (%s) and migrated successfully", cfg.DatabaseClient)
}
