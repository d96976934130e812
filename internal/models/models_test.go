// FilePath: internal/models/models_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppendReadingEvictsOldestFirst(t *testing.T) {
	sensor := &Sensor{ID: "sns_1"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 105; i++ {
		sensor.AppendReading(base.Add(time.Duration(i)*time.Second), float64(i))
	}

	require.Len(t, sensor.Data, MaxSensorDataPoints)
	// The first five readings were evicted; the 6th (value 5) survives.
	require.Equal(t, float64(5), sensor.Data[0].Value)
	require.Equal(t, float64(104), sensor.Data[len(sensor.Data)-1].Value)
}

func TestAppendReadingKeepsChronologicalOrder(t *testing.T) {
	sensor := &Sensor{}
	base := time.Now()
	for i := 0; i < 10; i++ {
		sensor.AppendReading(base.Add(time.Duration(i)*time.Minute), float64(i))
	}
	for i := 1; i < len(sensor.Data); i++ {
		require.True(t, sensor.Data[i].Datetime.After(sensor.Data[i-1].Datetime))
	}
}

func TestAllowsReleasedData(t *testing.T) {
	b := &Button{SendingData: []string{"0", "1", "2"}}
	require.True(t, b.AllowsReleasedData("1"))
	require.False(t, b.AllowsReleasedData("3"))
	require.False(t, b.AllowsReleasedData(""))

	empty := &Button{SendingData: []string{}}
	require.False(t, empty.AllowsReleasedData("0"))
}

func TestProjectWireFormat(t *testing.T) {
	p := Project{
		ProjectID:      "prj_1",
		Sensors:        []*Sensor{},
		SignalGroups:   []*SignalGroup{},
		CombinedGraphs: []*CombinedGraph{},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "sensordata")
	require.Contains(t, raw, "sendingsignal")
	require.Contains(t, raw, "convinesensorgraph")
}

func TestDevicePayloadUnmarshalStructured(t *testing.T) {
	var p DevicePayload
	err := json.Unmarshal([]byte(`{"sensors":{"A0":21.5},"buttons":{"btn_1":"1"}}`), &p)
	require.NoError(t, err)
	require.Equal(t, 21.5, p.Sensors["A0"])
	require.Equal(t, "1", p.Buttons["btn_1"])
}

func TestDevicePayloadUnmarshalFlatPinMap(t *testing.T) {
	var p DevicePayload
	err := json.Unmarshal([]byte(`{"A0":3.2,"D1":1}`), &p)
	require.NoError(t, err)
	require.Equal(t, 3.2, p.Sensors["A0"])
	require.Equal(t, float64(1), p.Sensors["D1"])
	require.Nil(t, p.Buttons)
}

func TestValidEnums(t *testing.T) {
	require.True(t, ValidPinType(PinAnalog))
	require.False(t, ValidPinType("analog"))

	require.True(t, ValidChartType(ChartComposed))
	require.False(t, ValidChartType("pie"))

	require.True(t, ValidButtonType(ButtonTouch))
	require.False(t, ValidButtonType("hold"))
}
