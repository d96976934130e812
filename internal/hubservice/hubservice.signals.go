package hubservice

import (
	"context"
	"fmt"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// ButtonInput carries the caller-supplied fields for a new button.
type ButtonInput struct {
	Title        string            `json:"title"`
	Type         models.ButtonType `json:"type"`
	PinNumber    string            `json:"pinnumber"`
	SendingData  []string          `json:"sendingdata"`
	ReleasedData string            `json:"releaseddata"`
	Char         string            `json:"char"`
	Action       string            `json:"action"`
	OnData       string            `json:"ondata"`
	OffData      string            `json:"offdata"`
	Sensitivity  string            `json:"sensitivity"`
	DefaultState string            `json:"defaultState"`
}

func (in ButtonInput) toButton() *models.Button {
	button := &models.Button{
		ID:           nuts.NID("btn", 12),
		Title:        in.Title,
		Type:         in.Type,
		PinNumber:    in.PinNumber,
		SendingData:  in.SendingData,
		ReleasedData: in.ReleasedData,
		Char:         in.Char,
		Action:       in.Action,
		OnData:       in.OnData,
		OffData:      in.OffData,
		Sensitivity:  in.Sensitivity,
		DefaultState: in.DefaultState,
	}
	if button.SendingData == nil {
		button.SendingData = []string{}
	}
	if button.ReleasedData == "" {
		button.ReleasedData = "0"
	}
	return button
}

// CreateSignal creates a named button group inside a project. Button types
// are re-checked here as a second line of defense.
func (s *HubService) CreateSignal(ctx context.Context, projectID, title string, buttons []ButtonInput) (*models.Signal, error) {
	for _, b := range buttons {
		if !models.ValidButtonType(b.Type) {
			msg := fmt.Sprintf("Invalid button type: %s. Must be one of 'momentary', 'toggle', or 'touch'.", b.Type)
			return nil, errors.NewValidationError(msg, nil)
		}
	}

	signal := &models.Signal{
		ID:      nuts.NID("sig", 12),
		Title:   title,
		Buttons: make([]*models.Button, 0, len(buttons)),
	}
	for _, in := range buttons {
		signal.Buttons = append(signal.Buttons, in.toButton())
	}

	if err := s.Signals.CreateForProject(ctx, projectID, signal); err != nil {
		return nil, err
	}
	return signal, nil
}

// UpdateSignalTitle renames a signal.
func (s *HubService) UpdateSignalTitle(ctx context.Context, signalID, title string) error {
	return s.Signals.UpdateTitle(ctx, signalID, title)
}

// DeleteSignal removes a signal and its buttons.
func (s *HubService) DeleteSignal(ctx context.Context, signalID string) error {
	return s.Signals.Delete(ctx, signalID)
}

// AddButton appends a button to an existing signal.
func (s *HubService) AddButton(ctx context.Context, signalID string, in ButtonInput) (*models.Button, error) {
	if !models.ValidButtonType(in.Type) {
		msg := fmt.Sprintf("Invalid button type: %s. Must be one of 'momentary', 'toggle', or 'touch'.", in.Type)
		return nil, errors.NewValidationError(msg, nil)
	}
	button := in.toButton()
	if err := s.Signals.AddButton(ctx, signalID, button); err != nil {
		return nil, err
	}
	return button, nil
}

// UpdateButton shallow-merges the provided button fields.
func (s *HubService) UpdateButton(ctx context.Context, buttonID string, fields *models.Button) (*models.Button, error) {
	if fields.Type != "" && !models.ValidButtonType(fields.Type) {
		msg := fmt.Sprintf("Invalid button type: %s. Must be one of 'momentary', 'toggle', or 'touch'.", fields.Type)
		return nil, errors.NewValidationError(msg, nil)
	}
	return s.Signals.UpdateButton(ctx, buttonID, fields)
}

// DeleteButton removes a button from its signal.
func (s *HubService) DeleteButton(ctx context.Context, buttonID string) error {
	return s.Signals.DeleteButton(ctx, buttonID)
}

// UpdateButtonReleasedData sets a button's latched state after membership
// validation against its sendingdata set, then notifies subscribers so the
// change reaches the device channel.
func (s *HubService) UpdateButtonReleasedData(ctx context.Context, buttonID, value string) error {
	change, err := s.Signals.UpdateReleasedData(ctx, buttonID, value)
	if err != nil {
		return err
	}

	s.events.Emit(EventReleasedDataChanged, change)
	nuts.L.Infof("[SignalService] Button %s releaseddata set to %q", buttonID, value)
	return nil
}
