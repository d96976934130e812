// FilePath: internal/aggregation/aggregation.go

// Package aggregation computes time-windowed statistics over sensor data
// series. Everything here is pure in-memory arithmetic; selection and
// averaging never mutate the underlying series.
package aggregation

import (
	"math"
	"time"

	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// FilterType selects which readings enter a combined-graph average.
type FilterType string

const (
	// FilterRealtime averages the single most recent reading.
	FilterRealtime FilterType = "realtime"
	// FilterCount averages the last N readings.
	FilterCount FilterType = "count"
	// FilterToday averages readings since local midnight.
	FilterToday FilterType = "today"
	// FilterDays averages readings of the last N days.
	FilterDays FilterType = "days"
)

// Valid reports whether t is a supported filter type.
func Valid(t FilterType) bool {
	switch t {
	case FilterRealtime, FilterCount, FilterToday, FilterDays:
		return true
	}
	return false
}

// RequiresValue reports whether t needs a positive numeric parameter.
func RequiresValue(t FilterType) bool {
	return t == FilterCount || t == FilterDays
}

// SelectWindow returns the subset of points matched by the filter, evaluated
// against now. Points are assumed to be in chronological order, which the
// ring buffer guarantees.
func SelectWindow(points []models.DataPoint, dataType FilterType, value float64, now time.Time) []models.DataPoint {
	switch dataType {
	case FilterRealtime:
		return Tail(points, 1)
	case FilterCount:
		return Tail(points, int(value))
	case FilterToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Since(points, midnight)
	case FilterDays:
		cutoff := now.Add(-time.Duration(value * float64(24*time.Hour)))
		return Since(points, cutoff)
	}
	return nil
}

// Tail returns the last n points, or all of them if fewer exist.
func Tail(points []models.DataPoint, n int) []models.DataPoint {
	if n <= 0 {
		return nil
	}
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

// Since returns the points with timestamps at or after cutoff.
func Since(points []models.DataPoint, cutoff time.Time) []models.DataPoint {
	out := make([]models.DataPoint, 0, len(points))
	for _, p := range points {
		if !p.Datetime.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// Window filters points to the [start, end] timestamp range. A zero bound is
// open-ended on that side.
func Window(points []models.DataPoint, start, end time.Time) []models.DataPoint {
	out := make([]models.DataPoint, 0, len(points))
	for _, p := range points {
		if !start.IsZero() && p.Datetime.Before(start) {
			continue
		}
		if !end.IsZero() && p.Datetime.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Mean returns the arithmetic mean of the points' values rounded to two
// decimal places. An empty selection averages to 0.
func Mean(points []models.DataPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return Round2(sum / float64(len(points)))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
