// FilePath: internal/repository/jsonfile/jsonfile.sensors.go
package jsonfile

import (
	"context"
	"time"

	"github.com/itsatony/struccy"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type SensorRepo struct {
	baseRepo
}

func NewSensorRepository(s *store.Store) *SensorRepo {
	return &SensorRepo{baseRepo{store: s}}
}

func (r *SensorRepo) Add(ctx context.Context, projectID string, sensor *models.Sensor) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		_, project := findProject(users, projectID)
		if project == nil {
			return nil, errors.NewNotFoundError("Project not found.", nil)
		}
		if sensor.Data == nil {
			sensor.Data = []models.DataPoint{}
		}
		project.Sensors = append(project.Sensors, sensor)
		project.Touch(time.Now())
		return users, nil
	})
}

func (r *SensorRepo) Get(ctx context.Context, sensorID string) (*models.Sensor, error) {
	_, sensor := findSensor(r.store.Read(), sensorID)
	if sensor == nil {
		return nil, errors.NewNotFoundError("Sensor not found.", nil)
	}
	return sensor, nil
}

func (r *SensorRepo) Update(ctx context.Context, sensorID string, fields *models.Sensor) (*models.Sensor, error) {
	var updated *models.Sensor
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, sensor := findSensor(users, sensorID)
		if sensor == nil {
			return nil, errors.NewNotFoundError("Sensor not found.", nil)
		}
		if _, _, err := struccy.UpdateStructFields(sensor, fields, writeRoles, true, true); err != nil {
			return nil, errors.NewInternalError("failed to merge sensor fields", err)
		}
		now := time.Now()
		sensor.UpdatedAt = now
		project.Touch(now)
		updated = sensor
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SensorRepo) UpdateGraphInfo(ctx context.Context, sensorID string, fields *models.GraphInfo) (*models.Sensor, error) {
	var updated *models.Sensor
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, sensor := findSensor(users, sensorID)
		if sensor == nil {
			return nil, errors.NewNotFoundError("Sensor not found.", nil)
		}
		if _, _, err := struccy.UpdateStructFields(&sensor.GraphInfo, fields, writeRoles, true, true); err != nil {
			return nil, errors.NewInternalError("failed to merge graph info fields", err)
		}
		now := time.Now()
		sensor.UpdatedAt = now
		project.Touch(now)
		updated = sensor
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SensorRepo) Delete(ctx context.Context, sensorID string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		for _, u := range users {
			for _, p := range u.Projects {
				for i, s := range p.Sensors {
					if s.ID == sensorID {
						p.Sensors = append(p.Sensors[:i], p.Sensors[i+1:]...)
						p.Touch(time.Now())
						return users, nil
					}
				}
			}
		}
		return nil, errors.NewNotFoundError("Sensor not found.", nil)
	})
}

// Ingest appends one reading per payload pin that matches a sensor of the
// project identified by token. Pins without a matching sensor are skipped
// silently; that is a device wiring mismatch, not an error. The ring buffer
// evicts the oldest reading once a sensor holds more than the cap.
func (r *SensorRepo) Ingest(ctx context.Context, token string, payload map[string]float64, at time.Time) ([]repository.IngestedReading, error) {
	var ingested []repository.IngestedReading
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project := findProjectByToken(users, token)
		if project == nil {
			return nil, errors.NewNotFoundError("Invalid project token.", nil)
		}
		project.Touch(at)
		for pin, value := range payload {
			sensor := project.FindSensorByPin(pin)
			if sensor == nil {
				continue
			}
			sensor.AppendReading(at, value)
			ingested = append(ingested, repository.IngestedReading{
				SensorID:  sensor.ID,
				PinNumber: pin,
				Value:     value,
				Timestamp: at,
			})
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return ingested, nil
}
