// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/config"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
)

// Event names emitted after each sweep.
const (
	EventSweepCompleted = "retention.sweep_completed"
	EventSweepFailed    = "retention.sweep_failed"
)

// Sweeper periodically deletes archived readings older than the configured
// retention window. It only touches the reading archive; the per-sensor ring
// buffers bound themselves.
type Sweeper struct {
	archive repository.ReadingArchiveRepository
	cfg     config.RetentionConfig
	events  *nuts.EventEmitter
	stop    chan struct{}
	done    chan struct{}
}

// New creates a new Sweeper
func New(archive repository.ReadingArchiveRepository, cfg config.RetentionConfig) *Sweeper {
	return &Sweeper{
		archive: archive,
		cfg:     cfg,
		events:  nuts.NewEventEmitter(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Events exposes the sweeper's emitter so monitoring can subscribe.
func (s *Sweeper) Events() *nuts.EventEmitter {
	return s.events
}

// Start launches the sweep loop. It runs one sweep immediately, then on every
// tick until Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs a single retention pass and returns the number of deleted rows.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.cfg.MaxReadingAge)
	return s.archive.DeleteOldReadings(ctx, cutoff)
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.Sweep(ctx)
	if err != nil {
		nuts.L.Errorf("[Cleanup] retention sweep failed: %v", err)
		s.events.Emit(EventSweepFailed, err)
		return
	}
	if deleted > 0 {
		nuts.L.Infof("[Cleanup] retention sweep deleted %d archived readings", deleted)
	}
	s.events.Emit(EventSweepCompleted, deleted)
}

// Stop halts the loop and waits for the current sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
