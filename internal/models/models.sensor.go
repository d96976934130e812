// FilePath: internal/models/models.sensor.go
package models

import "time"

// MaxSensorDataPoints caps a sensor's data buffer. Once the cap is reached
// the oldest reading is evicted first (FIFO).
const MaxSensorDataPoints = 100

type PinType string

const (
	PinAnalog  PinType = "Analog"
	PinDigital PinType = "Digital"
)

// ValidPinType reports whether t is one of the supported pin types.
func ValidPinType(t PinType) bool {
	return t == PinAnalog || t == PinDigital
}

type ChartType string

const (
	ChartLine     ChartType = "line"
	ChartBar      ChartType = "bar"
	ChartScatter  ChartType = "scatter"
	ChartArea     ChartType = "area"
	ChartComposed ChartType = "composed"
)

// ValidChartType reports whether t is one of the supported chart types.
func ValidChartType(t ChartType) bool {
	switch t {
	case ChartLine, ChartBar, ChartScatter, ChartArea, ChartComposed:
		return true
	}
	return false
}

// Sensor is a virtual sensor attached to a project, identified on the device
// side by its pin number. Data is an append-only ring buffer of readings.
type Sensor struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	TypeOfPin PinType     `json:"typeOfPin"`
	PinNumber string      `json:"pinNumber"`
	GraphInfo GraphInfo   `json:"graphInfo"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Data      []DataPoint `json:"data"`
}

// SensorSummary reduces a sensor to id and title for list responses.
type SensorSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DataPoint is a single timestamped reading.
type DataPoint struct {
	Datetime time.Time `json:"datetime"`
	Value    float64   `json:"value"`
}

// GraphInfo is the per-sensor chart display configuration.
type GraphInfo struct {
	Title         string    `json:"title"`
	Type          ChartType `json:"type"`
	MaxDataPoints int       `json:"maxDataPoints"`
	XAxisLabel    string    `json:"xAxisLabel"`
	YAxisLabel    string    `json:"yAxisLabel"`
}

// AppendReading pushes a reading onto the sensor's buffer, evicting the
// oldest entries once the buffer exceeds MaxSensorDataPoints.
func (s *Sensor) AppendReading(at time.Time, value float64) {
	s.Data = append(s.Data, DataPoint{Datetime: at, Value: value})
	if len(s.Data) > MaxSensorDataPoints {
		s.Data = s.Data[len(s.Data)-MaxSensorDataPoints:]
	}
}
