// FilePath: api/resources/api.resource.signals.go
package resources

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// SignalHandlers encapsulates the signal-group and button HTTP handlers
type SignalHandlers struct {
	hubservice *hubservice.HubService
}

type createSignalRequest struct {
	Title   string                   `json:"title"`
	Buttons []hubservice.ButtonInput `json:"buttons"`
}

type signalTitleRequest struct {
	Title string `json:"title"`
}

type releasedDataRequest struct {
	ReleasedData *string `json:"releaseddata"`
}

// @Summary Create a signal group
// @Description Create a named group of control buttons inside a project
// @Tags signals
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 201 {object} models.Signal
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /signals/create/{projectId} [post]
func (h *SignalHandlers) CreateSignal(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req createSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Title == "" || len(req.Buttons) == 0 {
		respondWithError(w, errors.NewValidationError("Request body must contain a title and a non-empty array of buttons.", nil))
		return
	}

	signal, err := h.hubservice.CreateSignal(r.Context(), projectID, req.Title, req.Buttons)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Sending signal created successfully!", map[string]interface{}{"signal": signal})
}

// @Summary Rename a signal group
// @Tags signals
// @Accept json
// @Produce json
// @Param signalId path string true "Signal ID"
// @Success 200
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /signals/{signalId}/title [put]
func (h *SignalHandlers) UpdateSignalTitle(w http.ResponseWriter, r *http.Request) {
	signalID := mux.Vars(r)["signalId"]

	var req signalTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Title == "" {
		respondWithError(w, errors.NewValidationError(`The "title" field is required.`, nil))
		return
	}

	if err := h.hubservice.UpdateSignalTitle(r.Context(), signalID, req.Title); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Signal title updated successfully.", nil)
}

// @Summary Delete a signal group
// @Tags signals
// @Produce json
// @Param signalId path string true "Signal ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /signals/{signalId} [delete]
func (h *SignalHandlers) DeleteSignal(w http.ResponseWriter, r *http.Request) {
	signalID := mux.Vars(r)["signalId"]

	if err := h.hubservice.DeleteSignal(r.Context(), signalID); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Signal deleted successfully.", nil)
}

// @Summary Add a button to a signal group
// @Tags signals
// @Accept json
// @Produce json
// @Param signalId path string true "Signal ID"
// @Success 201 {object} models.Button
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /signals/{signalId}/buttons [post]
func (h *SignalHandlers) AddButton(w http.ResponseWriter, r *http.Request) {
	signalID := mux.Vars(r)["signalId"]

	var in hubservice.ButtonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if in.Title == "" || in.Type == "" || in.PinNumber == "" {
		respondWithError(w, errors.NewValidationError(`Fields "title", "type", and "pinnumber" are required.`, nil))
		return
	}

	button, err := h.hubservice.AddButton(r.Context(), signalID, in)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Button added successfully!", map[string]interface{}{"button": button})
}

// @Summary Update a button
// @Description Shallow merge of the supplied button fields
// @Tags signals
// @Accept json
// @Produce json
// @Param buttonId path string true "Button ID"
// @Success 200
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /signals/buttons/{buttonId} [put]
func (h *SignalHandlers) UpdateButton(w http.ResponseWriter, r *http.Request) {
	buttonID := mux.Vars(r)["buttonId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}

	// Reject empty updates before the merge sees them.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if len(raw) == 0 {
		respondWithError(w, errors.NewValidationError("At least one field to update is required.", nil))
		return
	}

	var fields models.Button
	if err := json.Unmarshal(body, &fields); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}

	if _, err := h.hubservice.UpdateButton(r.Context(), buttonID, &fields); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Button updated successfully.", nil)
}

// @Summary Delete a button
// @Tags signals
// @Produce json
// @Param buttonId path string true "Button ID"
// @Success 200
// @Failure 404 {object} errors.APIError
// @Router /signals/buttons/{buttonId} [delete]
func (h *SignalHandlers) DeleteButton(w http.ResponseWriter, r *http.Request) {
	buttonID := mux.Vars(r)["buttonId"]

	if err := h.hubservice.DeleteButton(r.Context(), buttonID); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Button deleted successfully.", nil)
}

// @Summary Update a button's released state
// @Description The value must be a member of the button's sendingdata list; accepted changes are pushed to connected devices
// @Tags signals
// @Accept json
// @Produce json
// @Param buttonId path string true "Button ID"
// @Success 200
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /signals/buttons/{buttonId}/releaseddata [put]
func (h *SignalHandlers) UpdateButtonReleasedData(w http.ResponseWriter, r *http.Request) {
	buttonID := mux.Vars(r)["buttonId"]

	var req releasedDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.ReleasedData == nil {
		respondWithError(w, errors.NewValidationError(`The "releaseddata" field is required.`, nil))
		return
	}

	if err := h.hubservice.UpdateButtonReleasedData(r.Context(), buttonID, *req.ReleasedData); err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Button releaseddata updated successfully.", nil)
}
