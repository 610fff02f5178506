package bootstrap

import (
	"fmt"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/pkg/database"

	"gorm.io/gorm"
)

// OpenDatabase returns nil for the memory driver.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "memory":
		return nil, nil
	case database.DriverSQLite:
		return database.Open(database.Config{Driver: database.DriverSQLite, DSN: cfg.Database.SQLitePath})
	case database.DriverPostgres:
		return database.Open(database.Config{Driver: database.DriverPostgres, DSN: cfg.Database.Connection})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}
