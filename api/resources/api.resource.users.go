// FilePath: api/resources/api.resource.users.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
)

// UserHandlers encapsulates the account-related HTTP handlers
type UserHandlers struct {
	hubservice *hubservice.HubService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a new user
// @Description Create a user account with a bcrypt-hashed password
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /auth/register [post]
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		respondWithError(w, errors.NewValidationError("All fields are required.", nil))
		return
	}

	user, err := h.hubservice.RegisterUser(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully!", map[string]interface{}{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	})
}

// @Summary Log a user in
// @Description Verify credentials and return the account profile
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.PublicUser
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, errors.NewValidationError("Email and password are required.", nil))
		return
	}

	user, err := h.hubservice.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful!", map[string]interface{}{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	})
}
