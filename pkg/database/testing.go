package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenInMemory opens a private, migrated in-memory SQLite database.
// Each call gets its own named database so parallel tests never share rows.
func OpenInMemory() (*gorm.DB, error) {
	db, err := Open(Config{
		Driver: DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		// a single connection keeps the shared-cache database alive and serializes writers
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
