// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectRepository defines the interface for project operations
type ProjectRepository interface {
	CreateForUser(ctx context.Context, userID string, project *models.Project) error
	Get(ctx context.Context, projectID string) (*models.Project, error)
	GetByToken(ctx context.Context, token string) (*models.Project, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Project, error)
	Update(ctx context.Context, projectID string, fields *models.Project) (*models.Project, error)
	Delete(ctx context.Context, projectID string) error
}

// IngestedReading reports one reading appended by an ingestion call; the
// archive uses it to mirror readings outside the ring buffer.
type IngestedReading struct {
	SensorID  string
	PinNumber string
	Value     float64
	Timestamp time.Time
}

// SensorRepository defines the interface for sensor operations
type SensorRepository interface {
	Add(ctx context.Context, projectID string, sensor *models.Sensor) error
	Get(ctx context.Context, sensorID string) (*models.Sensor, error)
	Update(ctx context.Context, sensorID string, fields *models.Sensor) (*models.Sensor, error)
	UpdateGraphInfo(ctx context.Context, sensorID string, fields *models.GraphInfo) (*models.Sensor, error)
	Delete(ctx context.Context, sensorID string) error
	// Ingest appends one reading per payload pin that matches a sensor of the
	// project identified by token. Unmatched pins are skipped silently.
	Ingest(ctx context.Context, token string, payload map[string]float64, at time.Time) ([]IngestedReading, error)
}

// ReleasedDataChange describes a validated button state change, carrying the
// owning project's token so the notifier can route the fan-out.
type ReleasedDataChange struct {
	Button       *models.Button
	ProjectToken string
}

// SignalRepository defines the interface for signal group and button operations
type SignalRepository interface {
	CreateForProject(ctx context.Context, projectID string, signal *models.Signal) error
	UpdateTitle(ctx context.Context, signalID string, title string) error
	Delete(ctx context.Context, signalID string) error
	AddButton(ctx context.Context, signalID string, button *models.Button) error
	UpdateButton(ctx context.Context, buttonID string, fields *models.Button) (*models.Button, error)
	DeleteButton(ctx context.Context, buttonID string) error
	UpdateReleasedData(ctx context.Context, buttonID string, value string) (*ReleasedDataChange, error)
}

// CombinedGraphRepository defines the interface for combined-graph operations.
// Resolve serves the read paths of the aggregation engine; CacheLastFilter is
// the engine's one write-back (the "last viewed filter" memo).
type CombinedGraphRepository interface {
	Create(ctx context.Context, projectID string, graph *models.CombinedGraph, sensorIDs []string) error
	Resolve(ctx context.Context, graphID string) (*models.Project, *models.CombinedGraph, error)
	Update(ctx context.Context, graphID string, title string, sensorIDs []string) (*models.CombinedGraph, error)
	UpdateInfo(ctx context.Context, graphID string, fields *models.CombinedGraphInfo) (*models.CombinedGraphInfo, error)
	Delete(ctx context.Context, graphID string) error
	CacheLastFilter(ctx context.Context, graphID string, filter *models.LastFilter) error
}

// ReadingArchiveRepository defines the optional long-term reading archive;
// the ring buffer keeps only the last 100 readings per sensor, the archive
// keeps everything until retention sweeps it.
type ReadingArchiveRepository interface {
	InsertReadings(ctx context.Context, readings []IngestedReading) error
	GetReadings(ctx context.Context, sensorID string, start, end time.Time) ([]models.DataPoint, error)
	DeleteOldReadings(ctx context.Context, before time.Time) (int64, error)
}
