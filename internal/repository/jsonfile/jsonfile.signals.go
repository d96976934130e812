// FilePath: internal/repository/jsonfile/jsonfile.signals.go
package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsatony/struccy"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type SignalRepo struct {
	baseRepo
}

func NewSignalRepository(s *store.Store) *SignalRepo {
	return &SignalRepo{baseRepo{store: s}}
}

// CreateForProject appends the signal, wrapped in its own group entry. The
// one-group-per-signal nesting is part of the on-disk wire format.
func (r *SignalRepo) CreateForProject(ctx context.Context, projectID string, signal *models.Signal) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		_, project := findProject(users, projectID)
		if project == nil {
			return nil, errors.NewNotFoundError("Project not found.", nil)
		}
		project.SignalGroups = append(project.SignalGroups, &models.SignalGroup{
			Signals: []*models.Signal{signal},
		})
		project.Touch(time.Now())
		return users, nil
	})
}

func (r *SignalRepo) UpdateTitle(ctx context.Context, signalID string, title string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, _, signal := findSignal(users, signalID)
		if signal == nil {
			return nil, errors.NewNotFoundError("Signal not found.", nil)
		}
		signal.Title = title
		project.Touch(time.Now())
		return users, nil
	})
}

func (r *SignalRepo) Delete(ctx context.Context, signalID string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		for _, u := range users {
			for _, p := range u.Projects {
				for _, group := range p.SignalGroups {
					for i, sig := range group.Signals {
						if sig.ID == signalID {
							group.Signals = append(group.Signals[:i], group.Signals[i+1:]...)
							p.Touch(time.Now())
							return users, nil
						}
					}
				}
			}
		}
		return nil, errors.NewNotFoundError("Signal not found.", nil)
	})
}

func (r *SignalRepo) AddButton(ctx context.Context, signalID string, button *models.Button) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, _, signal := findSignal(users, signalID)
		if signal == nil {
			return nil, errors.NewNotFoundError("Signal not found.", nil)
		}
		signal.Buttons = append(signal.Buttons, button)
		project.Touch(time.Now())
		return users, nil
	})
}

func (r *SignalRepo) UpdateButton(ctx context.Context, buttonID string, fields *models.Button) (*models.Button, error) {
	var updated *models.Button
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, _, button := findButton(users, buttonID)
		if button == nil {
			return nil, errors.NewNotFoundError("Button not found.", nil)
		}
		if _, _, err := struccy.UpdateStructFields(button, fields, writeRoles, true, true); err != nil {
			return nil, errors.NewInternalError("failed to merge button fields", err)
		}
		project.Touch(time.Now())
		updated = button
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SignalRepo) DeleteButton(ctx context.Context, buttonID string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		for _, u := range users {
			for _, p := range u.Projects {
				for _, group := range p.SignalGroups {
					for _, sig := range group.Signals {
						for i, b := range sig.Buttons {
							if b.ID == buttonID {
								sig.Buttons = append(sig.Buttons[:i], sig.Buttons[i+1:]...)
								p.Touch(time.Now())
								return users, nil
							}
						}
					}
				}
			}
		}
		return nil, errors.NewNotFoundError("Button not found.", nil)
	})
}

// UpdateReleasedData sets a button's state after verifying the value is a
// member of the button's sendingdata set. A rejected value leaves the button
// and the document untouched.
func (r *SignalRepo) UpdateReleasedData(ctx context.Context, buttonID string, value string) (*repository.ReleasedDataChange, error) {
	var change *repository.ReleasedDataChange
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, _, button := findButton(users, buttonID)
		if button == nil {
			return nil, errors.NewNotFoundError("Button not found.", nil)
		}
		if !button.AllowsReleasedData(value) {
			msg := fmt.Sprintf("Invalid input. The value for releaseddata must be one of: [%s]",
				strings.Join(button.SendingData, ", "))
			return nil, errors.NewValidationError(msg, nil)
		}
		button.ReleasedData = value
		project.Touch(time.Now())
		change = &repository.ReleasedDataChange{
			Button:       button,
			ProjectToken: project.Token,
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}
