// FilePath: api/resources/api.resource.graphs.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// GraphHandlers encapsulates the combined-graph HTTP handlers
type GraphHandlers struct {
	hubservice *hubservice.HubService
}

type combinedGraphRequest struct {
	Title     string   `json:"title"`
	SensorIDs []string `json:"sensorIds"`
}

// @Summary Create a combined sensor graph
// @Description Every referenced sensor must exist in the project at creation time
// @Tags combined-graphs
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 201 {object} models.CombinedGraph
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{projectId} [post]
func (h *GraphHandlers) CreateCombinedGraph(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req combinedGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Title == "" || len(req.SensorIDs) == 0 {
		respondWithError(w, errors.NewValidationError(`Request must include a "title" and a non-empty array of "sensorIds".`, nil))
		return
	}

	graph, err := h.hubservice.CreateCombinedGraph(r.Context(), projectID, req.Title, req.SensorIDs)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Combined sensor graph created successfully!", map[string]interface{}{"combinedGraph": graph})
}

// @Summary Calculate a combined graph's averages
// @Description dataType selects the window: realtime, count, today or days; count and days need a positive value
// @Tags combined-graphs
// @Accept json
// @Produce json
// @Param graphId path string true "Graph ID"
// @Success 200 {object} hubservice.AverageResult
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{graphId}/average [post]
func (h *GraphHandlers) GetCombinedGraphAverage(w http.ResponseWriter, r *http.Request) {
	graphID := mux.Vars(r)["graphId"]

	var filter models.AverageFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if filter.DataType == "" {
		respondWithError(w, errors.NewValidationError(`The "dataType" field is required.`, nil))
		return
	}

	result, err := h.hubservice.CalculateCombinedGraphAverage(r.Context(), graphID, filter)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Average data calculated successfully!", result)
}

// @Summary Get a combined graph's windowed data
// @Description Read-only; optional startDate/endDate bounds, then tail-maxDataPoints averaging
// @Tags combined-graphs
// @Produce json
// @Param graphId path string true "Graph ID"
// @Param startDate query string false "Window start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Window end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} hubservice.GraphDataResult
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{graphId}/data [get]
func (h *GraphHandlers) GetCombinedGraphData(w http.ResponseWriter, r *http.Request) {
	graphID := mux.Vars(r)["graphId"]

	var window models.DataWindow
	if err := queryDecoder.Decode(&window, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err))
		return
	}

	result, err := h.hubservice.GetCombinedGraphData(r.Context(), graphID, window)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Combined graph data fetched successfully!", result)
}

// @Summary Update a combined graph
// @Description Replace the title and/or the referenced sensor list
// @Tags combined-graphs
// @Accept json
// @Produce json
// @Param graphId path string true "Graph ID"
// @Success 200 {object} models.CombinedGraph
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{graphId} [put]
func (h *GraphHandlers) UpdateCombinedGraph(w http.ResponseWriter, r *http.Request) {
	graphID := mux.Vars(r)["graphId"]

	var req combinedGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Title == "" && len(req.SensorIDs) == 0 {
		respondWithError(w, errors.NewValidationError(`Request body must contain either "title" or "sensorIds".`, nil))
		return
	}

	graph, err := h.hubservice.UpdateCombinedGraph(r.Context(), graphID, req.Title, req.SensorIDs)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Combined graph updated successfully!", map[string]interface{}{"updatedGraph": graph})
}

// @Summary Update a combined graph's display settings
// @Tags combined-graphs
// @Accept json
// @Produce json
// @Param graphId path string true "Graph ID"
// @Success 200 {object} models.CombinedGraphInfo
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{graphId}/info [put]
func (h *GraphHandlers) UpdateCombinedGraphInfo(w http.ResponseWriter, r *http.Request) {
	graphID := mux.Vars(r)["graphId"]

	var fields models.CombinedGraphInfo
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if fields.Title == "" && fields.Type == "" && fields.MaxDataPoints == 0 &&
		fields.XAxisLabel == "" && fields.YAxisLabel == "" {
		respondWithError(w, errors.NewValidationError("Request body must contain at least one field to update.", nil))
		return
	}

	info, err := h.hubservice.UpdateCombinedGraphInfo(r.Context(), graphID, &fields)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Combined graph info updated successfully!", map[string]interface{}{"updatedGraphInfo": info})
}

// @Summary Delete a combined graph
// @Tags combined-graphs
// @Produce json
// @Param graphId path string true "Graph ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /combined-graphs/{graphId} [delete]
func (h *GraphHandlers) DeleteCombinedGraph(w http.ResponseWriter, r *http.Request) {
	graphID := mux.Vars(r)["graphId"]

	if err := h.hubservice.DeleteCombinedGraph(r.Context(), graphID); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Combined graph deleted successfully.", nil)
}
