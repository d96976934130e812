// FilePath: internal/repository/jsonfile/jsonfile.baserepo.go

// Package jsonfile implements the entity repositories on top of the JSON
// document store. Every operation is a full read, a linear scan through the
// nested user tree, an in-place mutation, and a full write-back.
package jsonfile

import (
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

// writeRoles is the trusted internal writer identity for shallow merges; the
// service layer decides which fields reach a merge in the first place.
var writeRoles = []string{"system"}

type baseRepo struct {
	store *store.Store
}

// Traversal helpers. All lookups are flat scans in nesting order, stopping at
// the first match; ids are globally unique across the whole document.

func findUserByID(users []*models.User, id string) *models.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func findUserByEmail(users []*models.User, email string) *models.User {
	for _, u := range users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func findProject(users []*models.User, projectID string) (*models.User, *models.Project) {
	for _, u := range users {
		for _, p := range u.Projects {
			if p.ProjectID == projectID {
				return u, p
			}
		}
	}
	return nil, nil
}

func findProjectByToken(users []*models.User, token string) *models.Project {
	for _, u := range users {
		for _, p := range u.Projects {
			if p.Token == token {
				return p
			}
		}
	}
	return nil
}

func findSensor(users []*models.User, sensorID string) (*models.Project, *models.Sensor) {
	for _, u := range users {
		for _, p := range u.Projects {
			for _, s := range p.Sensors {
				if s.ID == sensorID {
					return p, s
				}
			}
		}
	}
	return nil, nil
}

func findSignal(users []*models.User, signalID string) (*models.Project, *models.SignalGroup, *models.Signal) {
	for _, u := range users {
		for _, p := range u.Projects {
			for _, group := range p.SignalGroups {
				for _, sig := range group.Signals {
					if sig.ID == signalID {
						return p, group, sig
					}
				}
			}
		}
	}
	return nil, nil, nil
}

func findButton(users []*models.User, buttonID string) (*models.Project, *models.Signal, *models.Button) {
	for _, u := range users {
		for _, p := range u.Projects {
			for _, group := range p.SignalGroups {
				for _, sig := range group.Signals {
					for _, b := range sig.Buttons {
						if b.ID == buttonID {
							return p, sig, b
						}
					}
				}
			}
		}
	}
	return nil, nil, nil
}

func findCombinedGraph(users []*models.User, graphID string) (*models.Project, *models.CombinedGraph) {
	for _, u := range users {
		for _, p := range u.Projects {
			for _, g := range p.CombinedGraphs {
				if g.ID == graphID {
					return p, g
				}
			}
		}
	}
	return nil, nil
}
