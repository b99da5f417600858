// database/bootstrap.go
package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"farmwise/entities"
)

// Open connects to the sqlite store and runs automigration. Unlike a hard
// startup dependency, a failure here is returned to the caller so the server
// can keep running in degraded mode with persistence disabled.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Crop{},
		&entities.Activity{},
		&entities.AdviceRecord{},
		&entities.KBDocument{},
		&entities.KBChunk{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	return db, nil
}
