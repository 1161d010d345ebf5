package database

import (
	"database/sql"
	"time"

	"filedrop/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/sirupsen/logrus"
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		logrus.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	if err = migrate(); err != nil {
		logrus.Fatalf("Error migrating database: %v", err)
	}

	logrus.Info("Successfully connected to PostgreSQL database")
}

func Close() {
	if DB != nil {
		DB.Close()
		logrus.Info("Database connection closed")
	}
}

// migrate creates the four tables on first startup. File name lists are JSON
// text, blobs live in files.data; foreign keys carry no cascading deletes.
func migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			deadline TIMESTAMPTZ NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			initial_files TEXT,
			initial_storage_path TEXT,
			submission_storage_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id SERIAL PRIMARY KEY,
			event_id INTEGER NOT NULL REFERENCES events(id),
			submitter_name TEXT NOT NULL,
			submitter_department TEXT NOT NULL,
			submitter_contact TEXT,
			files TEXT NOT NULL DEFAULT '[]',
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id SERIAL PRIMARY KEY,
			type TEXT NOT NULL,
			description TEXT NOT NULL,
			event_id INTEGER REFERENCES events(id),
			submission_id INTEGER REFERENCES submissions(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id SERIAL PRIMARY KEY,
			filename TEXT NOT NULL UNIQUE,
			original_name TEXT NOT NULL,
			mime_type TEXT,
			size BIGINT NOT NULL,
			data BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
