package history

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marmos91/ignitego/internal/history/migrations"
)

// OpenPostgres opens a shared Postgres-backed history store, the option for
// teams that want one audit trail across every operator's ignitectl rather
// than a per-machine SQLite file. Schema changes run through golang-migrate
// against an embedded migration set instead of gorm's AutoMigrate: a
// shared database benefits from explicit, reviewable migrations instead of
// implicit schema drift.
func OpenPostgres(dsn string) (*Store, error) {
	if err := migrateUp(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres history store: %w", err)
	}
	return &Store{db: db}, nil
}

func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "history_schema_migrations",
		DatabaseName:    "ignitectl_history",
	})
	if err != nil {
		return fmt.Errorf("create postgres migration driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run history migrations: %w", err)
	}
	return nil
}
