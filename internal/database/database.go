package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the configured database. SQLite is the default, a
// single-file store for the single local user; Postgres is opt-in via
// DB_DRIVER=postgres for deployments that have one. Returns the
// handle and the driver name used.
func Open() (*sql.DB, string, error) {
	driver := getEnv("DB_DRIVER", "sqlite3")
	if driver == "sqlite" {
		driver = "sqlite3"
	}

	var dsn string
	switch driver {
	case "sqlite3":
		dsn = getEnv("DB_PATH", "./heritage.db")
	case "postgres":
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "heritage_user")
		password := getEnv("DB_PASSWORD", "heritage_password")
		dbname := getEnv("DB_NAME", "heritage_map")
		sslmode := getEnv("DB_SSLMODE", "disable")
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode,
		)
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == "sqlite3" {
		// The sqlite driver does not tolerate concurrent writers on
		// one file handle.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	return db, driver, nil
}

func Migrate(db *sql.DB, driver string) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP
	);
	`
	if driver == "postgres" {
		query = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	}

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
