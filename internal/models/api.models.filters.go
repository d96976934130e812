package models

// AverageFilter selects the readings that enter a combined-graph average.
type AverageFilter struct {
	DataType string   `json:"dataType"`
	Value    *float64 `json:"value,omitempty"`
}

// DataWindow is an optional [start, end] timestamp window for combined-graph
// data requests; either bound may be empty (open-ended).
type DataWindow struct {
	StartDate string `schema:"startDate" json:"startDate,omitempty"`
	EndDate   string `schema:"endDate" json:"endDate,omitempty"`
}
