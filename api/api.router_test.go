// FilePath: api/api.router_test.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/repository/jsonfile"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type apiEnvelope struct {
	Success bool                   `json:"success"`
	Status  int                    `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "users.json"))
	svc := hubservice.New(
		jsonfile.NewUserRepository(s),
		jsonfile.NewProjectRepository(s),
		jsonfile.NewSensorRepository(s),
		jsonfile.NewSignalRepository(s),
		jsonfile.NewCombinedGraphRepository(s),
	)
	require.NoError(t, svc.Validate())
	return NewRouter(svc, nil)
}

func doJSON(t *testing.T, router *Router, method, path string, body interface{}) (int, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func registerUser(t *testing.T, router *Router) string {
	t.Helper()
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"phone":    "0123456789",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)
	userID, _ := env.Data["userId"].(string)
	require.NotEmpty(t, userID)
	return userID
}

func createProject(t *testing.T, router *Router, userID string) (projectID, token string) {
	t.Helper()
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/projects/"+userID+"/create", map[string]string{
		"projectName":      "Greenhouse",
		"description":      "south wall",
		"developmentBoard": "ESP32",
	})
	require.Equal(t, http.StatusCreated, code)
	project, _ := env.Data["project"].(map[string]interface{})
	require.NotNil(t, project)
	projectID, _ = project["projectId"].(string)
	token, _ = project["token"].(string)
	require.NotEmpty(t, projectID)
	require.NotEmpty(t, token)
	return projectID, token
}

func TestRegisterEnvelope(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ada",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
	require.Equal(t, http.StatusBadRequest, env.Status)
	require.Equal(t, "All fields are required.", env.Message)
	require.NotNil(t, env.Data)

	registerUser(t, router)

	// Duplicate email surfaces as a conflict.
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"phone":    "0123456789",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "A user with this email already exists.", env.Message)
}

func TestLoginFlow(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Login successful!", env.Message)

	code, env = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid email or password.", env.Message)
}

func TestProjectAndSensorFlow(t *testing.T) {
	router := newTestRouter(t)
	userID := registerUser(t, router)
	projectID, token := createProject(t, router, userID)

	// Add a sensor.
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/sensors/"+projectID, map[string]string{
		"sensorName": "Temperature",
	})
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "Sensor added successfully!", env.Message)
	sensor, _ := env.Data["sensor"].(map[string]interface{})
	require.Equal(t, "A0", sensor["pinNumber"])

	// The device pull endpoint serves the project's sensors by token.
	code, env = doJSON(t, router, http.MethodGet, "/api/v1/data/"+token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Data fetched successfully", env.Message)
	sensordata, _ := env.Data["sensordata"].([]interface{})
	require.Len(t, sensordata, 1)

	// Unknown token is a 404.
	code, env = doJSON(t, router, http.MethodGet, "/api/v1/data/bogus-token", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Invalid project token.", env.Message)

	// List the user's projects.
	code, env = doJSON(t, router, http.MethodGet, "/api/v1/projects/"+userID, nil)
	require.Equal(t, http.StatusOK, code)
	projects, _ := env.Data["projects"].([]interface{})
	require.Len(t, projects, 1)
}

func TestCombinedGraphValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	userID := registerUser(t, router)
	projectID, _ := createProject(t, router, userID)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/sensors/"+projectID, map[string]string{
		"sensorName": "Temperature",
	})
	require.Equal(t, http.StatusCreated, code)
	sensor, _ := env.Data["sensor"].(map[string]interface{})
	sensorID, _ := sensor["id"].(string)

	// Referencing a missing sensor fails and names the offender.
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/combined-graphs/"+projectID, map[string]interface{}{
		"title":     "Climate",
		"sensorIds": []string{sensorID, "sns_ghost"},
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Message, "sns_ghost")

	// A valid create, then an average request without dataType.
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/combined-graphs/"+projectID, map[string]interface{}{
		"title":     "Climate",
		"sensorIds": []string{sensorID},
	})
	require.Equal(t, http.StatusCreated, code)
	graph, _ := env.Data["combinedGraph"].(map[string]interface{})
	graphID, _ := graph["id"].(string)
	require.NotEmpty(t, graphID)

	code, env = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/combined-graphs/%s/average", graphID), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, `The "dataType" field is required.`, env.Message)

	code, env = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/combined-graphs/%s/average", graphID), map[string]interface{}{
		"dataType": "realtime",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Average data calculated successfully!", env.Message)
}

func TestReleasedDataOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	userID := registerUser(t, router)
	projectID, _ := createProject(t, router, userID)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/signals/create/"+projectID, map[string]interface{}{
		"title": "Lighting",
		"buttons": []map[string]interface{}{
			{"title": "LED", "type": "toggle", "pinnumber": "D5", "sendingdata": []string{"0", "1"}},
		},
	})
	require.Equal(t, http.StatusCreated, code)
	signal, _ := env.Data["signal"].(map[string]interface{})
	buttons, _ := signal["button"].([]interface{})
	require.Len(t, buttons, 1)
	buttonID, _ := buttons[0].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, buttonID)

	code, env = doJSON(t, router, http.MethodPut, "/api/v1/signals/buttons/"+buttonID+"/releaseddata", map[string]string{
		"releaseddata": "1",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Button releaseddata updated successfully.", env.Message)

	code, env = doJSON(t, router, http.MethodPut, "/api/v1/signals/buttons/"+buttonID+"/releaseddata", map[string]string{
		"releaseddata": "9",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Message, "Invalid input. The value for releaseddata must be one of: [0, 1]")
}
