// FilePath: api/resources/api.resource.projects.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
)

// ProjectHandlers encapsulates the project-related HTTP handlers
type ProjectHandlers struct {
	hubservice *hubservice.HubService
}

type projectRequest struct {
	ProjectName      string `json:"projectName"`
	Description      string `json:"description"`
	DevelopmentBoard string `json:"developmentBoard"`
}

// @Summary Create a project
// @Description Create a new project for a user, minting a fresh device token
// @Tags projects
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 201 {object} models.Project
// @Failure 404 {object} errors.APIError
// @Router /projects/{userId}/create [post]
func (h *ProjectHandlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}

	project, err := h.hubservice.CreateProject(r.Context(), userID, req.ProjectName, req.Description, req.DevelopmentBoard)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Project created successfully!", map[string]interface{}{"project": project})
}

// @Summary List a user's projects
// @Description Projects sorted newest first, with sensor id/title summaries
// @Tags projects
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.ProjectSummary
// @Failure 404 {object} errors.APIError
// @Router /projects/{userId} [get]
func (h *ProjectHandlers) ListUserProjects(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	projects, err := h.hubservice.ListUserProjects(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Projects fetched successfully", map[string]interface{}{"projects": projects})
}

// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} errors.APIError
// @Router /projects/by-id/{projectId} [get]
func (h *ProjectHandlers) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	project, err := h.hubservice.GetProject(r.Context(), projectID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Project fetched successfully", map[string]interface{}{"project": project})
}

// @Summary Update a project
// @Description Shallow merge of name, description and board; empty fields untouched
// @Tags projects
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /projects/{projectId} [put]
func (h *ProjectHandlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.ProjectName == "" && req.Description == "" && req.DevelopmentBoard == "" {
		respondWithError(w, errors.NewValidationError("No fields to update provided.", nil))
		return
	}

	project, err := h.hubservice.UpdateProject(r.Context(), projectID, req.ProjectName, req.Description, req.DevelopmentBoard)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Project updated successfully!", map[string]interface{}{"project": project})
}

// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /projects/{projectId} [delete]
func (h *ProjectHandlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	if err := h.hubservice.DeleteProject(r.Context(), projectID); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Project deleted successfully.", nil)
}

// @Summary List a project's sensors
// @Description Sensor id/title pairs only, no readings
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /projects/{projectId}/sensors [get]
func (h *ProjectHandlers) ListProjectSensors(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	project, err := h.hubservice.GetProject(r.Context(), projectID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	sensors := make([]map[string]string, 0, len(project.Sensors))
	for _, sensor := range project.Sensors {
		sensors = append(sensors, map[string]string{"id": sensor.ID, "title": sensor.Title})
	}

	respondSuccess(w, http.StatusOK, "Sensors fetched successfully", map[string]interface{}{"sensors": sensors})
}

// @Summary Device pull
// @Description Return the project's sensors for the device holding the token
// @Tags device
// @Produce json
// @Param token path string true "Project token"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /data/{token} [get]
func (h *ProjectHandlers) GetProjectData(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	sensors, err := h.hubservice.GetProjectDataByToken(r.Context(), token)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Data fetched successfully", map[string]interface{}{"sensordata": sensors})
}
