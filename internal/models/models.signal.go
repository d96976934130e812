// FilePath: internal/models/models.signal.go
package models

type ButtonType string

const (
	ButtonMomentary ButtonType = "momentary"
	ButtonToggle    ButtonType = "toggle"
	ButtonTouch     ButtonType = "touch"
)

// ValidButtonType reports whether t is one of the supported button types.
func ValidButtonType(t ButtonType) bool {
	return t == ButtonMomentary || t == ButtonToggle || t == ButtonTouch
}

// SignalGroup wraps one or more signals; the extra nesting level is part of
// the on-disk wire format.
type SignalGroup struct {
	Signals []*Signal `json:"signal"`
}

// Signal is a named group of buttons controlling the device.
type Signal struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Buttons []*Button `json:"button"`
}

// Button is a device control. SendingData enumerates the legal command
// values; ReleasedData is the current latched state and must always be a
// member of SendingData. The remaining fields are free-form device hints.
type Button struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Type         ButtonType `json:"type"`
	PinNumber    string     `json:"pinnumber"`
	SendingData  []string   `json:"sendingdata"`
	ReleasedData string     `json:"releaseddata"`
	Char         string     `json:"char,omitempty"`
	Action       string     `json:"action,omitempty"`
	OnData       string     `json:"ondata,omitempty"`
	OffData      string     `json:"offdata,omitempty"`
	Sensitivity  string     `json:"sensitivity,omitempty"`
	DefaultState string     `json:"defaultState,omitempty"`
}

// AllowsReleasedData reports whether v is a legal state for this button.
func (b *Button) AllowsReleasedData(v string) bool {
	for _, allowed := range b.SendingData {
		if allowed == v {
			return true
		}
	}
	return false
}
