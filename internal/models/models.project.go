// FilePath: internal/models/models.project.go
package models

import "time"

// Project binds a physical device to a user account. The token is the
// device-facing credential: it authenticates the websocket channel and keys
// every ingestion call. The nested JSON keys (sensordata, sendingsignal,
// convinesensorgraph) are the on-disk wire format and must not change.
type Project struct {
	ProjectID        string           `json:"projectId"`
	ProjectName      string           `json:"projectName"`
	Description      string           `json:"description"`
	DevelopmentBoard string           `json:"developmentBoard"`
	Token            string           `json:"token" readxs:"system,owner" writexs:"system"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Sensors          []*Sensor        `json:"sensordata"`
	SignalGroups     []*SignalGroup   `json:"sendingsignal"`
	CombinedGraphs   []*CombinedGraph `json:"convinesensorgraph"`
}

// ProjectSummary is the list view returned when fetching a user's projects.
type ProjectSummary struct {
	ProjectID        string          `json:"projectId"`
	ProjectName      string          `json:"projectName"`
	Description      string          `json:"description"`
	DevelopmentBoard string          `json:"developmentBoard"`
	TotalSensors     int             `json:"totalsensor"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Sensors          []SensorSummary `json:"sensors"`
}

// Summary flattens a project for listing, sensors reduced to id and title.
func (p *Project) Summary() ProjectSummary {
	sensors := make([]SensorSummary, 0, len(p.Sensors))
	for _, s := range p.Sensors {
		sensors = append(sensors, SensorSummary{ID: s.ID, Title: s.Title})
	}
	return ProjectSummary{
		ProjectID:        p.ProjectID,
		ProjectName:      p.ProjectName,
		Description:      p.Description,
		DevelopmentBoard: p.DevelopmentBoard,
		TotalSensors:     len(p.Sensors),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Sensors:          sensors,
	}
}

// FindSensor returns the sensor with the given id, or nil.
func (p *Project) FindSensor(sensorID string) *Sensor {
	for _, s := range p.Sensors {
		if s.ID == sensorID {
			return s
		}
	}
	return nil
}

// FindSensorByPin returns the first sensor wired to the given pin, or nil.
func (p *Project) FindSensorByPin(pin string) *Sensor {
	for _, s := range p.Sensors {
		if s.PinNumber == pin {
			return s
		}
	}
	return nil
}

// FindCombinedGraph returns the combined graph with the given id, or nil.
func (p *Project) FindCombinedGraph(graphID string) *CombinedGraph {
	for _, g := range p.CombinedGraphs {
		if g.ID == graphID {
			return g
		}
	}
	return nil
}

// Touch stamps the project's updatedAt. Every nested mutation calls this.
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}
