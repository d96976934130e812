// FilePath: internal/database/database.go
package database

import (
	"context"
	"fmt"

	"github.com/Nakib00/IoT-project-Server/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
)

// DB wraps the archive database connection
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
}

// ArchiveDB represents the TimescaleDB connection backing the reading archive
type ArchiveDB struct {
	db *sqlx.DB
}

// NewArchiveDB creates a new TimescaleDB connection for the reading archive
func NewArchiveDB(cfg config.ArchiveConfig) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to archive database: %w", err)
	}

	// Verify TimescaleDB extension
	var hasTimescaleDB bool
	err = db.Get(&hasTimescaleDB, "SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'timescaledb')")
	if err != nil || !hasTimescaleDB {
		return nil, fmt.Errorf("TimescaleDB extension not available")
	}

	nuts.L.Infof("[ArchiveDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &ArchiveDB{db: db}, nil
}

func (a *ArchiveDB) Close() error {
	return a.db.Close()
}

func (a *ArchiveDB) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *ArchiveDB) GetDB() *sqlx.DB {
	return a.db
}
