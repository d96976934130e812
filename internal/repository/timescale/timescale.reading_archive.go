// FilePath: internal/repository/timescale/timescale.reading_archive.go
package timescale

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/database"
	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
)

// ReadingArchiveRepo mirrors ingested readings into a TimescaleDB hypertable.
// The document store's ring buffer only keeps the last 100 readings per
// sensor; the archive keeps the full history until retention sweeps it.
type ReadingArchiveRepo struct {
	db database.DB
}

func NewReadingArchiveRepository(db database.DB) (*ReadingArchiveRepo, error) {
	repo := &ReadingArchiveRepo{db: db}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ReadingArchiveRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id TEXT PRIMARY KEY,
			sensor_id TEXT NOT NULL,
			pin_number TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL
		)`,
		`SELECT create_hypertable('sensor_readings', 'timestamp',
			chunk_time_interval => INTERVAL '1 day',
			if_not_exists => TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_sensor_time
			ON sensor_readings (sensor_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewStorageError("failed to initialize archive schema", err)
		}
	}
	return nil
}

// InsertReadings appends a batch of ingested readings to the archive.
func (r *ReadingArchiveRepo) InsertReadings(ctx context.Context, readings []repository.IngestedReading) error {
	if len(readings) == 0 {
		return nil
	}

	query := `
		INSERT INTO sensor_readings (id, sensor_id, pin_number, value, timestamp)
		VALUES ($1, $2, $3, $4, $5)`

	for _, reading := range readings {
		_, err := r.db.GetDB().ExecContext(ctx, query,
			nuts.NID("rdg", 16), reading.SensorID, reading.PinNumber, reading.Value, reading.Timestamp)
		if err != nil {
			return errors.NewStorageError("failed to archive reading", err)
		}
	}
	return nil
}

// GetReadings returns the archived readings of one sensor in a time range,
// oldest first.
func (r *ReadingArchiveRepo) GetReadings(ctx context.Context, sensorID string, start, end time.Time) ([]models.DataPoint, error) {
	query := `
		SELECT value, timestamp
		FROM sensor_readings
		WHERE sensor_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC`

	rows, err := r.db.GetDB().QueryxContext(ctx, query, sensorID, start, end)
	if err != nil {
		return nil, errors.NewStorageError("failed to query archived readings", err)
	}
	defer rows.Close()

	var points []models.DataPoint
	for rows.Next() {
		var value float64
		var ts time.Time
		if err := rows.Scan(&value, &ts); err != nil {
			return nil, errors.NewStorageError("failed to scan archived reading", err)
		}
		points = append(points, models.DataPoint{Datetime: ts, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to read archived readings", err)
	}
	return points, nil
}

// DeleteOldReadings drops archived readings older than before and reports how
// many were removed.
func (r *ReadingArchiveRepo) DeleteOldReadings(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM sensor_readings WHERE timestamp < $1`, before)
	if err != nil {
		return 0, errors.NewStorageError("failed to delete old readings", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to get rows affected", err)
	}

	nuts.L.Infof("[ReadingArchive] Deleted %d readings older than %v", rows, before)
	return rows, nil
}
