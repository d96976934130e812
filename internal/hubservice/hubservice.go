package hubservice

import (
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/cache"
	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
)

// EventReleasedDataChanged fires after a validated button state change has
// been persisted. The argument is a *repository.ReleasedDataChange; the
// notifier uses the project token to route the fan-out.
const EventReleasedDataChanged = "button.releaseddata_changed"

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Users   repository.UserRepository
	Projects repository.ProjectRepository
	Sensors repository.SensorRepository
	Signals repository.SignalRepository
	Graphs  repository.CombinedGraphRepository

	// Archive and TokenCache are optional; nil disables them.
	Archive    repository.ReadingArchiveRepository
	TokenCache *cache.TokenCache

	events *nuts.EventEmitter
}

// New creates a new HubService instance
func New(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	sensors repository.SensorRepository,
	signals repository.SignalRepository,
	graphs repository.CombinedGraphRepository,
) *HubService {
	return &HubService{
		Users:    users,
		Projects: projects,
		Sensors:  sensors,
		Signals:  signals,
		Graphs:   graphs,
		events:   nuts.NewEventEmitter(),
	}
}

// WithArchive attaches the optional long-term reading archive.
func (s *HubService) WithArchive(archive repository.ReadingArchiveRepository) *HubService {
	s.Archive = archive
	return s
}

// WithTokenCache attaches the optional device-token resolution cache.
func (s *HubService) WithTokenCache(tc *cache.TokenCache) *HubService {
	s.TokenCache = tc
	return s
}

// Events exposes the service event emitter for subscribers like the notifier.
func (s *HubService) Events() *nuts.EventEmitter {
	return s.events
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Projects == nil {
		return ErrMissingRepository("projects")
	}
	if s.Sensors == nil {
		return ErrMissingRepository("sensors")
	}
	if s.Signals == nil {
		return ErrMissingRepository("signals")
	}
	if s.Graphs == nil {
		return ErrMissingRepository("graphs")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
