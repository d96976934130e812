// FilePath: internal/models/models.combinedgraph.go
package models

import "time"

// CombinedGraph aggregates several sensors of one project for joint display.
// Sensors holds point-in-time snapshot references (id and title captured at
// creation or update), not owning links: it is validated against the project
// at write time only. The convinegraphInfo JSON key is the historical on-disk
// spelling and stays for wire compatibility.
type CombinedGraph struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Sensors   []SensorRef       `json:"sensors"`
	GraphInfo CombinedGraphInfo `json:"convinegraphInfo"`
}

// SensorRef is a snapshot reference to a sensor of the same project.
type SensorRef struct {
	SensorID    string `json:"sensorid"`
	SensorTitle string `json:"sensorTitle"`
}

// CombinedGraphInfo is the display configuration of a combined graph, plus a
// cache of the most recently requested average filter.
type CombinedGraphInfo struct {
	Title         string      `json:"title"`
	Type          ChartType   `json:"type"`
	MaxDataPoints int         `json:"maxDataPoints"`
	XAxisLabel    string      `json:"xAxisLabel"`
	YAxisLabel    string      `json:"yAxisLabel"`
	LastFilter    *LastFilter `json:"lastFilter,omitempty"`
}

// LastFilter remembers the last average request served for a graph.
type LastFilter struct {
	DataType  string    `json:"dataType"`
	Value     *float64  `json:"value"`
	QueriedAt time.Time `json:"queriedAt"`
}

// SensorIDs returns the referenced sensor ids in order.
func (g *CombinedGraph) SensorIDs() []string {
	ids := make([]string, 0, len(g.Sensors))
	for _, ref := range g.Sensors {
		ids = append(ids, ref.SensorID)
	}
	return ids
}
