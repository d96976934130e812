package hubservice

import (
	"context"
	"fmt"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/aggregation"
	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// noDataNote annotates a per-sensor result when the referenced sensor is
// missing (deleted after the snapshot was taken) or has an empty series.
const noDataNote = "Sensor not found or has no data."

// SensorAverage is one sensor's contribution to a combined-graph average.
type SensorAverage struct {
	SensorID string  `json:"sensorId"`
	Title    string  `json:"title"`
	Average  float64 `json:"average"`
	Note     string  `json:"note,omitempty"`
}

// AverageResult is the full response of a combined-graph average request.
type AverageResult struct {
	GraphTitle string          `json:"graphTitle"`
	Averages   []SensorAverage `json:"averages"`
}

// SensorWindowStat is one sensor's contribution to a windowed data request.
type SensorWindowStat struct {
	SensorID       string  `json:"sensorId"`
	Title          string  `json:"title"`
	Average        float64 `json:"average"`
	DataPointCount int     `json:"dataPointCount"`
	Note           string  `json:"note,omitempty"`
}

// GraphDataResult is the full response of a windowed data request.
type GraphDataResult struct {
	GraphTitle string                   `json:"graphTitle"`
	GraphInfo  models.CombinedGraphInfo `json:"convinegraphInfo"`
	Results    []SensorWindowStat       `json:"results"`
}

// CreateCombinedGraph creates a virtual graph over several of a project's
// sensors. Every referenced sensor must exist at creation time.
func (s *HubService) CreateCombinedGraph(ctx context.Context, projectID, title string, sensorIDs []string) (*models.CombinedGraph, error) {
	graph := &models.CombinedGraph{
		ID:    nuts.NID("cgr", 12),
		Title: title,
		GraphInfo: models.CombinedGraphInfo{
			Title:         "Combined: " + title,
			Type:          models.ChartLine,
			MaxDataPoints: 20,
			XAxisLabel:    "Time",
			YAxisLabel:    "Values",
		},
	}

	if err := s.Graphs.Create(ctx, projectID, graph, sensorIDs); err != nil {
		return nil, err
	}
	return graph, nil
}

// CalculateCombinedGraphAverage computes the mean of each referenced sensor's
// readings under the requested filter. A sensor with no matching readings
// contributes average 0 with a note instead of failing the request; the
// requested filter is cached on the graph as lastFilter.
func (s *HubService) CalculateCombinedGraphAverage(ctx context.Context, graphID string, filter models.AverageFilter) (*AverageResult, error) {
	dataType := aggregation.FilterType(filter.DataType)
	if !aggregation.Valid(dataType) {
		return nil, errors.NewValidationError("Invalid dataType. Must be one of: count, days, today, realtime.", nil)
	}
	var value float64
	if aggregation.RequiresValue(dataType) {
		if filter.Value == nil || *filter.Value <= 0 {
			msg := fmt.Sprintf("The \"value\" field must be a positive number for dataType '%s'.", filter.DataType)
			return nil, errors.NewValidationError(msg, nil)
		}
		value = *filter.Value
	}

	project, graph, err := s.Graphs.Resolve(ctx, graphID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	averages := make([]SensorAverage, 0, len(graph.Sensors))
	for _, ref := range graph.Sensors {
		sensor := project.FindSensor(ref.SensorID)
		if sensor == nil || len(sensor.Data) == 0 {
			title := "Unknown Sensor"
			if sensor != nil {
				title = sensor.Title
			}
			averages = append(averages, SensorAverage{
				SensorID: ref.SensorID,
				Title:    title,
				Average:  0,
				Note:     noDataNote,
			})
			continue
		}

		window := aggregation.SelectWindow(sensor.Data, dataType, value, now)
		averages = append(averages, SensorAverage{
			SensorID: sensor.ID,
			Title:    sensor.Title,
			Average:  aggregation.Mean(window),
		})
	}

	// Best-effort write-back of the last requested filter.
	lastFilter := &models.LastFilter{
		DataType:  filter.DataType,
		Value:     filter.Value,
		QueriedAt: now,
	}
	if err := s.Graphs.CacheLastFilter(ctx, graphID, lastFilter); err != nil {
		nuts.L.Warnf("[GraphService] Failed to cache last filter for graph %s: %v", graphID, err)
	}

	return &AverageResult{GraphTitle: graph.Title, Averages: averages}, nil
}

// GetCombinedGraphData serves the charting view: each referenced sensor's
// series optionally clamped to [startDate, endDate], reduced to the last
// maxDataPoints entries, and averaged. Read-only.
func (s *HubService) GetCombinedGraphData(ctx context.Context, graphID string, window models.DataWindow) (*GraphDataResult, error) {
	start, err := parseWindowBound(window.StartDate)
	if err != nil {
		return nil, errors.NewValidationError("Invalid startDate; use RFC3339 or YYYY-MM-DD.", err)
	}
	end, err := parseWindowBound(window.EndDate)
	if err != nil {
		return nil, errors.NewValidationError("Invalid endDate; use RFC3339 or YYYY-MM-DD.", err)
	}

	project, graph, err := s.Graphs.Resolve(ctx, graphID)
	if err != nil {
		return nil, err
	}

	maxPoints := graph.GraphInfo.MaxDataPoints
	if maxPoints <= 0 {
		maxPoints = 10
	}

	results := make([]SensorWindowStat, 0, len(graph.Sensors))
	for _, ref := range graph.Sensors {
		sensor := project.FindSensor(ref.SensorID)
		if sensor == nil || len(sensor.Data) == 0 {
			title := "Unknown Sensor"
			if sensor != nil {
				title = sensor.Title
			}
			results = append(results, SensorWindowStat{
				SensorID:       ref.SensorID,
				Title:          title,
				Average:        0,
				DataPointCount: 0,
				Note:           noDataNote,
			})
			continue
		}

		filtered := aggregation.Window(sensor.Data, start, end)
		tail := aggregation.Tail(filtered, maxPoints)
		results = append(results, SensorWindowStat{
			SensorID:       sensor.ID,
			Title:          sensor.Title,
			Average:        aggregation.Mean(tail),
			DataPointCount: len(tail),
		})
	}

	return &GraphDataResult{
		GraphTitle: graph.Title,
		GraphInfo:  graph.GraphInfo,
		Results:    results,
	}, nil
}

// UpdateCombinedGraph replaces the title and/or the referenced sensor list;
// a new sensor list is re-validated against the project.
func (s *HubService) UpdateCombinedGraph(ctx context.Context, graphID, title string, sensorIDs []string) (*models.CombinedGraph, error) {
	return s.Graphs.Update(ctx, graphID, title, sensorIDs)
}

// UpdateCombinedGraphInfo shallow-merges the display configuration.
func (s *HubService) UpdateCombinedGraphInfo(ctx context.Context, graphID string, fields *models.CombinedGraphInfo) (*models.CombinedGraphInfo, error) {
	if fields.Type != "" && !models.ValidChartType(fields.Type) {
		return nil, errors.NewValidationError("Invalid graph type. Must be one of: line, bar, scatter, area, composed.", nil)
	}
	return s.Graphs.UpdateInfo(ctx, graphID, fields)
}

// DeleteCombinedGraph removes a combined graph; the underlying sensor data is
// untouched.
func (s *HubService) DeleteCombinedGraph(ctx context.Context, graphID string) error {
	return s.Graphs.Delete(ctx, graphID)
}

func parseWindowBound(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
