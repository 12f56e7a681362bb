package history

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite opens (creating if necessary) a local file-backed history
// store. A single-writer local file doesn't need golang-migrate's
// versioned migrations; gorm's own AutoMigrate is enough for one table.
func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite history store: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite history store: %w", err)
	}
	return &Store{db: db}, nil
}
