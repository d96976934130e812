// FilePath: api/resources/api.resource.sensors.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	hubservice *hubservice.HubService
}

type addSensorRequest struct {
	SensorName string `json:"sensorName"`
}

type updateSensorRequest struct {
	Title     string         `json:"title"`
	TypeOfPin models.PinType `json:"typeOfPin"`
	PinNumber string         `json:"pinNumber"`
}

// historyQuery bounds the archive lookup. Accepts RFC3339 timestamps.
type historyQuery struct {
	Start string `schema:"start"`
	End   string `schema:"end"`
}

// @Summary Add a sensor to a project
// @Description Creates a sensor with Analog/A0/line-chart defaults
// @Tags sensors
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 201 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors/{projectId} [post]
func (h *SensorHandlers) AddSensor(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req addSensorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.SensorName == "" {
		respondWithError(w, errors.NewValidationError(`The "sensorName" field is required.`, nil))
		return
	}

	sensor, err := h.hubservice.AddSensor(r.Context(), projectID, req.SensorName)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Sensor added successfully!", map[string]interface{}{"sensor": sensor})
}

// @Summary Update a sensor
// @Description Shallow merge of title, pin type and pin number
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensorId path string true "Sensor ID"
// @Success 200 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors/{sensorId} [put]
func (h *SensorHandlers) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	sensorID := mux.Vars(r)["sensorId"]

	var req updateSensorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Title == "" && req.TypeOfPin == "" && req.PinNumber == "" {
		respondWithError(w, errors.NewValidationError("At least one field (title, typeOfPin, pinNumber) is required.", nil))
		return
	}

	sensor, err := h.hubservice.UpdateSensor(r.Context(), sensorID, req.Title, req.TypeOfPin, req.PinNumber)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Sensor updated successfully!", map[string]interface{}{"sensor": sensor})
}

// @Summary Get a sensor by ID
// @Description Readings come back newest first
// @Tags sensors
// @Produce json
// @Param sensorId path string true "Sensor ID"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/by-id/{sensorId} [get]
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	sensorID := mux.Vars(r)["sensorId"]

	sensor, err := h.hubservice.GetSensor(r.Context(), sensorID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Sensor data fetched successfully", map[string]interface{}{"sensor": sensor})
}

// @Summary Delete a sensor
// @Tags sensors
// @Produce json
// @Param sensorId path string true "Sensor ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /sensors/{sensorId} [delete]
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	sensorID := mux.Vars(r)["sensorId"]

	if err := h.hubservice.DeleteSensor(r.Context(), sensorID); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Sensor deleted successfully.", nil)
}

// @Summary Update a sensor's graph settings
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensorId path string true "Sensor ID"
// @Success 200 {object} models.GraphInfo
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors/{sensorId}/graph [put]
func (h *SensorHandlers) UpdateGraphInfo(w http.ResponseWriter, r *http.Request) {
	sensorID := mux.Vars(r)["sensorId"]

	var fields models.GraphInfo
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if fields.Title == "" && fields.Type == "" && fields.MaxDataPoints == 0 &&
		fields.XAxisLabel == "" && fields.YAxisLabel == "" {
		respondWithError(w, errors.NewValidationError("At least one graph info field is required.", nil))
		return
	}

	sensor, err := h.hubservice.UpdateSensorGraphInfo(r.Context(), sensorID, &fields)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Graph info updated successfully!", map[string]interface{}{"graphInfo": sensor.GraphInfo})
}

// @Summary Get archived readings for a sensor
// @Description Serves history beyond the live ring buffer; requires the reading archive
// @Tags sensors
// @Produce json
// @Param sensorId path string true "Sensor ID"
// @Param start query string false "RFC3339 lower bound"
// @Param end query string false "RFC3339 upper bound"
// @Success 200 {array} models.DataPoint
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors/by-id/{sensorId}/history [get]
func (h *SensorHandlers) GetSensorHistory(w http.ResponseWriter, r *http.Request) {
	sensorID := mux.Vars(r)["sensorId"]

	var q historyQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err))
		return
	}

	var start, end time.Time
	var err error
	if q.Start != "" {
		if start, err = time.Parse(time.RFC3339, q.Start); err != nil {
			respondWithError(w, errors.NewValidationError(`The "start" parameter must be an RFC3339 timestamp.`, err))
			return
		}
	}
	if q.End != "" {
		if end, err = time.Parse(time.RFC3339, q.End); err != nil {
			respondWithError(w, errors.NewValidationError(`The "end" parameter must be an RFC3339 timestamp.`, err))
			return
		}
	}

	readings, err := h.hubservice.GetSensorHistory(r.Context(), sensorID, start, end)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Sensor history fetched successfully", map[string]interface{}{"readings": readings})
}
