// FilePath: internal/repository/jsonfile/jsonfile_test.go
package jsonfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

const (
	testUserID    = "usr_test"
	testProjectID = "prj_test"
	testToken     = "tok-device-123"
	testSensorID  = "sns_temp"
	testSignalID  = "sig_main"
	testButtonID  = "btn_led"
)

// seedStore builds a document with one user, one project, one sensor on pin
// A0 and one signal group holding a single button.
func seedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "users.json"))

	now := time.Now().Add(-time.Hour)
	user := &models.User{
		ID:    testUserID,
		Name:  "Ada",
		Email: "ada@example.com",
		Projects: []*models.Project{
			{
				ProjectID:   testProjectID,
				ProjectName: "Greenhouse",
				Token:       testToken,
				CreatedAt:   now,
				UpdatedAt:   now,
				Sensors: []*models.Sensor{
					{
						ID:        testSensorID,
						Title:     "Temperature",
						TypeOfPin: models.PinAnalog,
						PinNumber: "A0",
						Data:      []models.DataPoint{},
					},
				},
				SignalGroups: []*models.SignalGroup{
					{
						Signals: []*models.Signal{
							{
								ID:    testSignalID,
								Title: "Lighting",
								Buttons: []*models.Button{
									{
										ID:           testButtonID,
										Title:        "LED",
										Type:         models.ButtonToggle,
										PinNumber:    "D5",
										SendingData:  []string{"0", "1"},
										ReleasedData: "0",
									},
								},
							},
						},
					},
				},
				CombinedGraphs: []*models.CombinedGraph{},
			},
		},
	}

	require.NoError(t, s.Update(func(users []*models.User) ([]*models.User, error) {
		return append(users, user), nil
	}))
	return s
}

func TestIngestRingBufferLaw(t *testing.T) {
	s := seedStore(t)
	repo := NewSensorRepository(s)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 105; i++ {
		ingested, err := repo.Ingest(ctx, testToken, map[string]float64{"A0": float64(i)}, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.Len(t, ingested, 1)
		require.Equal(t, testSensorID, ingested[0].SensorID)
	}

	sensor, err := repo.Get(ctx, testSensorID)
	require.NoError(t, err)
	require.Len(t, sensor.Data, models.MaxSensorDataPoints)
	// Oldest five evicted; the surviving head is the 6th reading.
	require.Equal(t, float64(5), sensor.Data[0].Value)
	require.Equal(t, float64(104), sensor.Data[len(sensor.Data)-1].Value)
}

func TestIngestInvalidToken(t *testing.T) {
	s := seedStore(t)
	repo := NewSensorRepository(s)

	_, err := repo.Ingest(context.Background(), "no-such-token", map[string]float64{"A0": 1}, time.Now())
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
	require.Contains(t, err.Error(), "Invalid project token.")
}

func TestIngestSkipsUnmatchedPins(t *testing.T) {
	s := seedStore(t)
	repo := NewSensorRepository(s)
	ctx := context.Background()

	ingested, err := repo.Ingest(ctx, testToken, map[string]float64{"Z9": 42}, time.Now())
	require.NoError(t, err)
	require.Empty(t, ingested)

	sensor, err := repo.Get(ctx, testSensorID)
	require.NoError(t, err)
	require.Empty(t, sensor.Data)
}

func TestSensorUpdateShallowMerge(t *testing.T) {
	s := seedStore(t)
	repo := NewSensorRepository(s)
	ctx := context.Background()

	updated, err := repo.Update(ctx, testSensorID, &models.Sensor{Title: "Soil Temperature"})
	require.NoError(t, err)
	require.Equal(t, "Soil Temperature", updated.Title)
	// Untouched fields keep their stored values.
	require.Equal(t, models.PinAnalog, updated.TypeOfPin)
	require.Equal(t, "A0", updated.PinNumber)
	require.False(t, updated.UpdatedAt.IsZero())
}

func TestReleasedDataMembershipLaw(t *testing.T) {
	s := seedStore(t)
	repo := NewSignalRepository(s)
	ctx := context.Background()

	change, err := repo.UpdateReleasedData(ctx, testButtonID, "1")
	require.NoError(t, err)
	require.Equal(t, "1", change.Button.ReleasedData)
	require.Equal(t, testToken, change.ProjectToken)

	_, err = repo.UpdateReleasedData(ctx, testButtonID, "7")
	require.Error(t, err)
	require.True(t, errors.IsValidation(err))
	require.Contains(t, err.Error(), "Invalid input. The value for releaseddata must be one of: [0, 1]")

	// The rejected write must not have touched the stored state.
	_, _, button := findButton(s.Read(), testButtonID)
	require.NotNil(t, button)
	require.Equal(t, "1", button.ReleasedData)
}

func TestCombinedGraphCreateReferentialCheck(t *testing.T) {
	s := seedStore(t)
	repo := NewCombinedGraphRepository(s)
	ctx := context.Background()

	graph := &models.CombinedGraph{ID: "cgr_1", Title: "Climate"}
	err := repo.Create(ctx, testProjectID, graph, []string{testSensorID, "sns_ghost"})
	require.Error(t, err)
	require.True(t, errors.IsValidation(err))
	require.Contains(t, err.Error(), "sns_ghost")

	// Nothing persisted on failure.
	_, project := findProject(s.Read(), testProjectID)
	require.Empty(t, project.CombinedGraphs)
}

func TestCombinedGraphCreateSnapshotsTitles(t *testing.T) {
	s := seedStore(t)
	repo := NewCombinedGraphRepository(s)
	ctx := context.Background()

	graph := &models.CombinedGraph{ID: "cgr_1", Title: "Climate"}
	require.NoError(t, repo.Create(ctx, testProjectID, graph, []string{testSensorID}))

	_, stored, err := repo.Resolve(ctx, "cgr_1")
	require.NoError(t, err)
	require.Len(t, stored.Sensors, 1)
	require.Equal(t, testSensorID, stored.Sensors[0].SensorID)
	require.Equal(t, "Temperature", stored.Sensors[0].SensorTitle)
}

func TestCacheLastFilterSkipsProjectTouch(t *testing.T) {
	s := seedStore(t)
	repo := NewCombinedGraphRepository(s)
	ctx := context.Background()

	graph := &models.CombinedGraph{ID: "cgr_1", Title: "Climate"}
	require.NoError(t, repo.Create(ctx, testProjectID, graph, []string{testSensorID}))

	_, project := findProject(s.Read(), testProjectID)
	before := project.UpdatedAt

	value := 5.0
	require.NoError(t, repo.CacheLastFilter(ctx, "cgr_1", &models.LastFilter{
		DataType:  "count",
		Value:     &value,
		QueriedAt: time.Now(),
	}))

	_, project = findProject(s.Read(), testProjectID)
	require.True(t, project.UpdatedAt.Equal(before))

	_, stored, err := repo.Resolve(ctx, "cgr_1")
	require.NoError(t, err)
	require.NotNil(t, stored.GraphInfo.LastFilter)
	require.Equal(t, "count", stored.GraphInfo.LastFilter.DataType)
}

func TestProjectUpdateShallowMerge(t *testing.T) {
	s := seedStore(t)
	repo := NewProjectRepository(s)
	ctx := context.Background()

	updated, err := repo.Update(ctx, testProjectID, &models.Project{Description: "south wall"})
	require.NoError(t, err)
	require.Equal(t, "south wall", updated.Description)
	require.Equal(t, "Greenhouse", updated.ProjectName)
	require.Equal(t, testToken, updated.Token)
}

func TestProjectGetByToken(t *testing.T) {
	s := seedStore(t)
	repo := NewProjectRepository(s)
	ctx := context.Background()

	project, err := repo.GetByToken(ctx, testToken)
	require.NoError(t, err)
	require.Equal(t, testProjectID, project.ProjectID)

	_, err = repo.GetByToken(ctx, "bogus")
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
	require.Contains(t, err.Error(), "Invalid project token.")
}

func TestProjectDelete(t *testing.T) {
	s := seedStore(t)
	repo := NewProjectRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, testProjectID))

	_, err := repo.Get(ctx, testProjectID)
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))

	err = repo.Delete(ctx, testProjectID)
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
}

func TestUserLookup(t *testing.T) {
	s := seedStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)

	_, err = repo.GetByID(ctx, "usr_ghost")
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
}

func TestSignalDeleteRemovesFromGroup(t *testing.T) {
	s := seedStore(t)
	repo := NewSignalRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, testSignalID))

	_, _, signal := findSignal(s.Read(), testSignalID)
	require.Nil(t, signal)
}
