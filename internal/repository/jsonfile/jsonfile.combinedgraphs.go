// FilePath: internal/repository/jsonfile/jsonfile.combinedgraphs.go
package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/itsatony/struccy"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type CombinedGraphRepo struct {
	baseRepo
}

func NewCombinedGraphRepository(s *store.Store) *CombinedGraphRepo {
	return &CombinedGraphRepo{baseRepo{store: s}}
}

// Create validates every referenced sensor against the project and stores a
// snapshot of {sensorid, sensorTitle}. The snapshot is a point-in-time
// reference: it is not re-validated on later reads.
func (r *CombinedGraphRepo) Create(ctx context.Context, projectID string, graph *models.CombinedGraph, sensorIDs []string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		_, project := findProject(users, projectID)
		if project == nil {
			return nil, errors.NewNotFoundError("Project not found.", nil)
		}
		refs, err := snapshotSensorRefs(project, sensorIDs, "not found in")
		if err != nil {
			return nil, err
		}
		graph.Sensors = refs
		project.CombinedGraphs = append(project.CombinedGraphs, graph)
		project.Touch(time.Now())
		return users, nil
	})
}

// Resolve returns the graph together with its owning project so the
// aggregation engine can read the referenced sensors' series.
func (r *CombinedGraphRepo) Resolve(ctx context.Context, graphID string) (*models.Project, *models.CombinedGraph, error) {
	project, graph := findCombinedGraph(r.store.Read(), graphID)
	if graph == nil {
		return nil, nil, errors.NewNotFoundError("Combined graph not found.", nil)
	}
	return project, graph, nil
}

func (r *CombinedGraphRepo) Update(ctx context.Context, graphID string, title string, sensorIDs []string) (*models.CombinedGraph, error) {
	var updated *models.CombinedGraph
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, graph := findCombinedGraph(users, graphID)
		if graph == nil {
			return nil, errors.NewNotFoundError("Combined graph not found.", nil)
		}
		if title != "" {
			graph.Title = title
			graph.GraphInfo.Title = "Combined: " + title
		}
		if len(sensorIDs) > 0 {
			refs, err := snapshotSensorRefs(project, sensorIDs, "does not exist in")
			if err != nil {
				return nil, err
			}
			graph.Sensors = refs
		}
		project.Touch(time.Now())
		updated = graph
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CombinedGraphRepo) UpdateInfo(ctx context.Context, graphID string, fields *models.CombinedGraphInfo) (*models.CombinedGraphInfo, error) {
	var updated *models.CombinedGraphInfo
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		project, graph := findCombinedGraph(users, graphID)
		if graph == nil {
			return nil, errors.NewNotFoundError("Combined graph not found.", nil)
		}
		if _, _, err := struccy.UpdateStructFields(&graph.GraphInfo, fields, writeRoles, true, true); err != nil {
			return nil, errors.NewInternalError("failed to merge graph info fields", err)
		}
		project.Touch(time.Now())
		updated = &graph.GraphInfo
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CombinedGraphRepo) Delete(ctx context.Context, graphID string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		for _, u := range users {
			for _, p := range u.Projects {
				for i, g := range p.CombinedGraphs {
					if g.ID == graphID {
						p.CombinedGraphs = append(p.CombinedGraphs[:i], p.CombinedGraphs[i+1:]...)
						p.Touch(time.Now())
						return users, nil
					}
				}
			}
		}
		return nil, errors.NewNotFoundError("Combined graph not found.", nil)
	})
}

// CacheLastFilter remembers the most recent average request on the graph.
// This is the average read path's one write-back; it deliberately does not
// stamp the project's updatedAt, since no entity data changed.
func (r *CombinedGraphRepo) CacheLastFilter(ctx context.Context, graphID string, filter *models.LastFilter) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		_, graph := findCombinedGraph(users, graphID)
		if graph == nil {
			return nil, errors.NewNotFoundError("Combined graph not found.", nil)
		}
		graph.GraphInfo.LastFilter = filter
		return users, nil
	})
}

func snapshotSensorRefs(project *models.Project, sensorIDs []string, missingVerb string) ([]models.SensorRef, error) {
	refs := make([]models.SensorRef, 0, len(sensorIDs))
	for _, sid := range sensorIDs {
		sensor := project.FindSensor(sid)
		if sensor == nil {
			msg := fmt.Sprintf("Sensor with ID %q %s this project.", sid, missingVerb)
			return nil, errors.NewValidationError(msg, nil)
		}
		refs = append(refs, models.SensorRef{SensorID: sensor.ID, SensorTitle: sensor.Title})
	}
	return refs, nil
}
