package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nakib00/IoT-project-Server/api/resources"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

// NewRouter builds the REST surface. The websocket hub is mounted separately
// so the device channel stays outside the versioned prefix.
func NewRouter(svc *hubservice.HubService, deviceHub http.Handler) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes(deviceHub)
	return r
}

// Resources exposes the handler set so the server can attach health/metrics.
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) setupRoutes(deviceHub http.Handler) {
	if deviceHub != nil {
		r.router.Handle("/ws", deviceHub)
	}

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck != nil {
			r.resources.HealthCheck(w, req)
		}
	}).Methods(http.MethodGet)
	api.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.Metrics != nil {
			r.resources.Metrics(w, req)
		}
	}).Methods(http.MethodGet)

	// Accounts
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.resources.Users.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.resources.Users.Login).Methods(http.MethodPost)

	// Projects
	projects := api.PathPrefix("/projects").Subrouter()
	projects.HandleFunc("/{userId}/create", r.resources.Projects.CreateProject).Methods(http.MethodPost)
	projects.HandleFunc("/by-id/{projectId}", r.resources.Projects.GetProject).Methods(http.MethodGet)
	projects.HandleFunc("/{userId}", r.resources.Projects.ListUserProjects).Methods(http.MethodGet)
	projects.HandleFunc("/{projectId}", r.resources.Projects.UpdateProject).Methods(http.MethodPut)
	projects.HandleFunc("/{projectId}", r.resources.Projects.DeleteProject).Methods(http.MethodDelete)
	projects.HandleFunc("/{projectId}/sensors", r.resources.Projects.ListProjectSensors).Methods(http.MethodGet)

	// Sensors
	sensors := api.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("/by-id/{sensorId}", r.resources.Sensors.GetSensor).Methods(http.MethodGet)
	sensors.HandleFunc("/by-id/{sensorId}/history", r.resources.Sensors.GetSensorHistory).Methods(http.MethodGet)
	sensors.HandleFunc("/{projectId}", r.resources.Sensors.AddSensor).Methods(http.MethodPost)
	sensors.HandleFunc("/{sensorId}", r.resources.Sensors.UpdateSensor).Methods(http.MethodPut)
	sensors.HandleFunc("/{sensorId}", r.resources.Sensors.DeleteSensor).Methods(http.MethodDelete)
	sensors.HandleFunc("/{sensorId}/graph", r.resources.Sensors.UpdateGraphInfo).Methods(http.MethodPut)

	// Signal groups and buttons
	signals := api.PathPrefix("/signals").Subrouter()
	signals.HandleFunc("/create/{projectId}", r.resources.Signals.CreateSignal).Methods(http.MethodPost)
	signals.HandleFunc("/buttons/{buttonId}/releaseddata", r.resources.Signals.UpdateButtonReleasedData).Methods(http.MethodPut)
	signals.HandleFunc("/buttons/{buttonId}", r.resources.Signals.UpdateButton).Methods(http.MethodPut)
	signals.HandleFunc("/buttons/{buttonId}", r.resources.Signals.DeleteButton).Methods(http.MethodDelete)
	signals.HandleFunc("/{signalId}/title", r.resources.Signals.UpdateSignalTitle).Methods(http.MethodPut)
	signals.HandleFunc("/{signalId}/buttons", r.resources.Signals.AddButton).Methods(http.MethodPost)
	signals.HandleFunc("/{signalId}", r.resources.Signals.DeleteSignal).Methods(http.MethodDelete)

	// Combined graphs
	graphs := api.PathPrefix("/combined-graphs").Subrouter()
	graphs.HandleFunc("/{graphId}/average", r.resources.Graphs.GetCombinedGraphAverage).Methods(http.MethodPost)
	graphs.HandleFunc("/{graphId}/data", r.resources.Graphs.GetCombinedGraphData).Methods(http.MethodGet)
	graphs.HandleFunc("/{graphId}/info", r.resources.Graphs.UpdateCombinedGraphInfo).Methods(http.MethodPut)
	graphs.HandleFunc("/{projectId}", r.resources.Graphs.CreateCombinedGraph).Methods(http.MethodPost)
	graphs.HandleFunc("/{graphId}", r.resources.Graphs.UpdateCombinedGraph).Methods(http.MethodPut)
	graphs.HandleFunc("/{graphId}", r.resources.Graphs.DeleteCombinedGraph).Methods(http.MethodDelete)

	// Device pull, no auth. The bare /data/{token} path is what shipped
	// firmware already calls.
	api.HandleFunc("/data/{token}", r.resources.Projects.GetProjectData).Methods(http.MethodGet)
	api.HandleFunc("/device/{token}/data", r.resources.Projects.GetProjectData).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
