package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global catalog database connection
var DB *sqlx.DB

// Config selects the catalog database
type Config struct {
	Type string // sqlite or postgres
	Path string // SQLite file path
	DSN  string // PostgreSQL connection string
}

// Connect establishes a connection to the catalog database and creates the schema
func Connect(cfg Config) error {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Type {
	case "postgres":
		if cfg.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for postgres")
		}
		db, err = sqlx.Connect("postgres", cfg.DSN)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	case "", "sqlite":
		dbPath := cfg.Path
		if dbPath == "" {
			dbPath = filepath.Join("data", "skillspace.db")
		}
		if dbPath != ":memory:" {
			// Create data directory if it doesn't exist
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", cfg.Type)
	}

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}

// initializeSchema creates the catalog tables if they don't exist
func initializeSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS daily_missions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			reward_xp INTEGER NOT NULL CHECK (reward_xp >= 0),
			icon TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_missions table: %w", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT 'BASIC',
			starter_code TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create challenges table: %w", err)
	}

	return nil
}
