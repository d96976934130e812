// FilePath: internal/models/models.device.go
package models

import "encoding/json"

// DeviceMessage is what a device sends over the websocket channel: either an
// auth handshake carrying the project token, or a data/device_update payload.
type DeviceMessage struct {
	Token   string         `json:"token,omitempty"`
	Action  string         `json:"action"`
	Payload *DevicePayload `json:"payload,omitempty"`
}

// Device message actions.
const (
	DeviceActionAuth   = "auth"
	DeviceActionData   = "data"
	DeviceActionUpdate = "device_update"
)

// DevicePayload carries pin readings and button states in one message.
type DevicePayload struct {
	Sensors map[string]float64 `json:"sensors,omitempty"`
	Buttons map[string]string  `json:"buttons,omitempty"`
}

// UnmarshalJSON accepts both payload shapes devices send: the structured
// {"sensors": {...}, "buttons": {...}} form and the legacy flat pin→value
// map used with the "data" action.
func (p *DevicePayload) UnmarshalJSON(data []byte) error {
	type structured DevicePayload
	var s structured
	if err := json.Unmarshal(data, &s); err == nil && (s.Sensors != nil || s.Buttons != nil) {
		*p = DevicePayload(s)
		return nil
	}

	var flat map[string]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	p.Sensors = flat
	p.Buttons = nil
	return nil
}

// AuthReply is the server's answer to an auth handshake.
type AuthReply struct {
	Status string `json:"status"`
}

const (
	AuthStatusOK     = "authenticated"
	AuthStatusFailed = "authentication failed"
)

// ReleasedDataUpdate is pushed to authenticated device connections bound to
// the owning project's token whenever a button's state changes.
type ReleasedDataUpdate struct {
	Action       string `json:"action"`
	ButtonID     string `json:"buttonId"`
	ReleasedData string `json:"releaseddata"`
}

const ActionReleasedDataUpdate = "releaseddata_update"
