package database

import (
	"fmt"
	"os"
	"strings"

	"HealthAssistant/database/postgres"
	"HealthAssistant/database/sqlite"
	"github.com/jmoiron/sqlx"
)

// New connects to the FAQ database selected by DB_DRIVER (sqlite by default).
func New() (*sqlx.DB, error) {
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))

	switch driver {
	case "", sqlite.DriverName:
		return sqlite.New()
	case postgres.DriverName:
		return postgres.New()
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
