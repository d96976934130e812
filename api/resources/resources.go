// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Users       *UserHandlers
	Projects    *ProjectHandlers
	Sensors     *SensorHandlers
	Signals     *SignalHandlers
	Graphs      *GraphHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Metrics     func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Users:    &UserHandlers{hubservice: svc},
		Projects: &ProjectHandlers{hubservice: svc},
		Sensors:  &SensorHandlers{hubservice: svc},
		Signals:  &SignalHandlers{hubservice: svc},
		Graphs:   &GraphHandlers{hubservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h func(w http.ResponseWriter, r *http.Request)) {
	r.Metrics = h
}

// queryDecoder decodes query parameters into request structs.
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors"`
}

// Helper functions

func respondSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{
		Success: true,
		Status:  code,
		Message: message,
		Data:    data,
	})
}

func respondWithError(w http.ResponseWriter, err error) {
	code := errors.StatusCode(err)
	message := "Internal Server Error"
	if apiErr, ok := err.(*errors.APIError); ok {
		message = apiErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Status:  code,
		Message: message,
		Data:    map[string]interface{}{},
	})
	nuts.L.Errorf("[API] %v", err)
}
