package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverName  = "sqlite"
	DefaultPath = "./storage/database.db"
)

func init() {
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

// New opens the SQLite database at SQLITE_PATH, creating its directory.
func New() (*sqlx.DB, error) {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = DefaultPath
	}
	return Open(path)
}

func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect(DriverName, path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return db, nil
}
