// Package history persists a local audit trail of ignitectl invocations:
// which command ran, against which server, and whether it succeeded. It
// backs the "ignitectl history" subcommand and is entirely independent of
// the wire protocol itself.
package history

import (
	"time"

	"gorm.io/gorm"
)

// Entry records one ignitectl invocation.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	Command   string    `gorm:"index"`
	Args      string
	Address   string
	Success   bool
	Error     string
	CreatedAt time.Time
}

// Store persists Entry rows, backed by either a local SQLite file (the
// default, single-operator case) or a shared Postgres database.
type Store struct {
	db *gorm.DB
}

// Record appends an entry.
func (s *Store) Record(e Entry) error {
	return s.db.Create(&e).Error
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.Order("created_at desc").Limit(n).Find(&entries).Error
	return entries, err
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
