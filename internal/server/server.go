// FilePath: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/api"
	"github.com/Nakib00/IoT-project-Server/internal/cache"
	"github.com/Nakib00/IoT-project-Server/internal/cleanup"
	"github.com/Nakib00/IoT-project-Server/internal/config"
	"github.com/Nakib00/IoT-project-Server/internal/database"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/monitoring"
	"github.com/Nakib00/IoT-project-Server/internal/notifier"
	"github.com/Nakib00/IoT-project-Server/internal/repository/jsonfile"
	"github.com/Nakib00/IoT-project-Server/internal/repository/timescale"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

// Server wires the document store, repositories, services and HTTP surface
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	notifier   *notifier.Hub
	monitoring *monitoring.Service
	sweeper    *cleanup.Sweeper
	tokenCache *cache.TokenCache
	archiveDB  database.DB
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		config:     cfg,
		monitoring: monitoring.NewService(),
	}

	documents := store.New(cfg.Store.Path)
	documents.Events().On(store.EventCorruptionRecovered, "server_monitoring", func(err error) {
		labels := map[string]string{"path": cfg.Store.Path}
		labels["error"] = fmt.Sprintf("%v", err)
		s.monitoring.RecordEvent("store_corruption_recovered", labels)
	})

	svc := hubservice.New(
		jsonfile.NewUserRepository(documents),
		jsonfile.NewProjectRepository(documents),
		jsonfile.NewSensorRepository(documents),
		jsonfile.NewSignalRepository(documents),
		jsonfile.NewCombinedGraphRepository(documents),
	)

	if cfg.Archive.Enabled {
		db, err := database.NewArchiveDB(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("archive database: %w", err)
		}
		archive, err := timescale.NewReadingArchiveRepository(db)
		if err != nil {
			return nil, fmt.Errorf("archive schema: %w", err)
		}
		svc.WithArchive(archive)
		s.archiveDB = db
		s.sweeper = cleanup.New(archive, cfg.Retention)
		s.setupSweeperHandlers()
	}

	if cfg.Redis.Enabled {
		tc, err := cache.NewTokenCache(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("token cache: %w", err)
		}
		svc.WithTokenCache(tc)
		s.tokenCache = tc
	}

	if err := svc.Validate(); err != nil {
		return nil, err
	}
	s.hubservice = svc
	s.notifier = notifier.New(svc, cfg.Websocket)

	router := api.NewRouter(svc, s.notifier)
	router.Resources().SetHealthCheck(s.handleHealth())
	router.Resources().SetMetrics(s.handleMetrics())

	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CORS(
			handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(router),
	)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if s.sweeper != nil {
		s.sweeper.Start(ctx)
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.tokenCache != nil {
		s.tokenCache.Close()
	}
	if s.archiveDB != nil {
		s.archiveDB.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "ok",
			"version":     nuts.GetVersion(),
			"connections": s.notifier.ConnectionCount(),
		})
	}
}

// handleMetrics exposes the in-process event counters
func (s *Server) handleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(s.monitoring.Snapshot())
	}
}

func (s *Server) setupSweeperHandlers() {
	s.sweeper.Events().On(cleanup.EventSweepCompleted, "server_monitoring", func(deleted int64) {
		labels := map[string]string{}
		labels["deleted"] = fmt.Sprintf("%v", deleted)
		s.monitoring.RecordEvent("retention_sweep_completed", labels)
	})
	s.sweeper.Events().On(cleanup.EventSweepFailed, "server_monitoring", func(err error) {
		s.monitoring.RecordEvent("retention_sweep_failed", nil)
	})
}
