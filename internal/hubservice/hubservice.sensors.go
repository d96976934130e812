package hubservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// AddSensor attaches a new sensor to a project with the standard defaults:
// analog pin A0 and a 10-point line chart.
func (s *HubService) AddSensor(ctx context.Context, projectID, sensorName string) (*models.Sensor, error) {
	now := time.Now()
	sensor := &models.Sensor{
		ID:        nuts.NID("sns", 12),
		Title:     sensorName,
		TypeOfPin: models.PinAnalog,
		PinNumber: "A0",
		GraphInfo: models.GraphInfo{
			Title:         fmt.Sprintf("Real-time %s Data", sensorName),
			Type:          models.ChartLine,
			MaxDataPoints: 10,
			XAxisLabel:    "Time",
			YAxisLabel:    "Value",
		},
		CreatedAt: now,
		UpdatedAt: now,
		Data:      []models.DataPoint{},
	}

	if err := s.Sensors.Add(ctx, projectID, sensor); err != nil {
		return nil, err
	}
	return sensor, nil
}

// GetSensor returns one sensor with its readings ordered newest first. The
// ordering applies to the returned copy only; storage order stays
// chronological.
func (s *HubService) GetSensor(ctx context.Context, sensorID string) (*models.Sensor, error) {
	sensor, err := s.Sensors.Get(ctx, sensorID)
	if err != nil {
		return nil, err
	}

	view := *sensor
	view.Data = make([]models.DataPoint, len(sensor.Data))
	copy(view.Data, sensor.Data)
	sort.Slice(view.Data, func(i, j int) bool {
		return view.Data[i].Datetime.After(view.Data[j].Datetime)
	})
	return &view, nil
}

// UpdateSensor shallow-merges title, pin type and pin number. The pin type
// enum is re-checked here as a second line of defense.
func (s *HubService) UpdateSensor(ctx context.Context, sensorID, title string, typeOfPin models.PinType, pinNumber string) (*models.Sensor, error) {
	if typeOfPin != "" && !models.ValidPinType(typeOfPin) {
		return nil, errors.NewValidationError(`typeOfPin must be either "Analog" or "Digital".`, nil)
	}
	fields := &models.Sensor{
		Title:     title,
		TypeOfPin: typeOfPin,
		PinNumber: pinNumber,
	}
	return s.Sensors.Update(ctx, sensorID, fields)
}

// UpdateSensorGraphInfo shallow-merges the chart display configuration.
func (s *HubService) UpdateSensorGraphInfo(ctx context.Context, sensorID string, fields *models.GraphInfo) (*models.Sensor, error) {
	if fields.Type != "" && !models.ValidChartType(fields.Type) {
		return nil, errors.NewValidationError("Invalid graph type. Must be one of: line, bar, scatter, area, composed.", nil)
	}
	return s.Sensors.UpdateGraphInfo(ctx, sensorID, fields)
}

// DeleteSensor removes a sensor. Combined graphs referencing it keep their
// snapshot and report "no data" on later reads; there is no cascade.
func (s *HubService) DeleteSensor(ctx context.Context, sensorID string) error {
	return s.Sensors.Delete(ctx, sensorID)
}

// IngestSensorData appends readings for every payload pin with a matching
// sensor in the token's project, and mirrors them into the archive when one
// is attached. Archive failures are logged, never surfaced: the ring buffer
// write is the authoritative one.
func (s *HubService) IngestSensorData(ctx context.Context, token string, payload map[string]float64) error {
	ingested, err := s.Sensors.Ingest(ctx, token, payload, time.Now())
	if err != nil {
		return err
	}

	if s.Archive != nil && len(ingested) > 0 {
		if err := s.Archive.InsertReadings(ctx, ingested); err != nil {
			nuts.L.Warnf("[SensorService] Failed to archive %d readings: %v", len(ingested), err)
		}
	}
	return nil
}

// GetSensorHistory serves archived readings beyond the ring buffer's reach.
func (s *HubService) GetSensorHistory(ctx context.Context, sensorID string, start, end time.Time) ([]models.DataPoint, error) {
	if s.Archive == nil {
		return nil, errors.NewValidationError("The reading archive is not enabled.", nil)
	}
	if _, err := s.Sensors.Get(ctx, sensorID); err != nil {
		return nil, err
	}
	if end.IsZero() {
		end = time.Now()
	}
	return s.Archive.GetReadings(ctx, sensorID, start, end)
}
