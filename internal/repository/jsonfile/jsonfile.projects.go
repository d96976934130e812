// FilePath: internal/repository/jsonfile/jsonfile.projects.go
package jsonfile

import (
	"context"
	"time"

	"github.com/itsatony/struccy"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/store"
)

type ProjectRepo struct {
	baseRepo
}

func NewProjectRepository(s *store.Store) *ProjectRepo {
	return &ProjectRepo{baseRepo{store: s}}
}

func (r *ProjectRepo) CreateForUser(ctx context.Context, userID string, project *models.Project) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		user := findUserByID(users, userID)
		if user == nil {
			return nil, errors.NewNotFoundError("User not found.", nil)
		}
		if project.Sensors == nil {
			project.Sensors = []*models.Sensor{}
		}
		if project.SignalGroups == nil {
			project.SignalGroups = []*models.SignalGroup{}
		}
		if project.CombinedGraphs == nil {
			project.CombinedGraphs = []*models.CombinedGraph{}
		}
		user.Projects = append(user.Projects, project)
		return users, nil
	})
}

func (r *ProjectRepo) Get(ctx context.Context, projectID string) (*models.Project, error) {
	_, project := findProject(r.store.Read(), projectID)
	if project == nil {
		return nil, errors.NewNotFoundError("Project not found.", nil)
	}
	return project, nil
}

func (r *ProjectRepo) GetByToken(ctx context.Context, token string) (*models.Project, error) {
	project := findProjectByToken(r.store.Read(), token)
	if project == nil {
		return nil, errors.NewNotFoundError("Invalid project token.", nil)
	}
	return project, nil
}

func (r *ProjectRepo) ListForUser(ctx context.Context, userID string) ([]*models.Project, error) {
	user := findUserByID(r.store.Read(), userID)
	if user == nil {
		return nil, errors.NewNotFoundError("User not found.", nil)
	}
	return user.Projects, nil
}

// Update shallow-merges the non-zero fields into the project; fields the
// caller leaves unset stay untouched.
func (r *ProjectRepo) Update(ctx context.Context, projectID string, fields *models.Project) (*models.Project, error) {
	var updated *models.Project
	err := r.store.Update(func(users []*models.User) ([]*models.User, error) {
		_, project := findProject(users, projectID)
		if project == nil {
			return nil, errors.NewNotFoundError("Project not found.", nil)
		}
		if _, _, err := struccy.UpdateStructFields(project, fields, writeRoles, true, true); err != nil {
			return nil, errors.NewInternalError("failed to merge project fields", err)
		}
		project.Touch(time.Now())
		updated = project
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, projectID string) error {
	return r.store.Update(func(users []*models.User) ([]*models.User, error) {
		for _, u := range users {
			for i, p := range u.Projects {
				if p.ProjectID == projectID {
					u.Projects = append(u.Projects[:i], u.Projects[i+1:]...)
					return users, nil
				}
			}
		}
		return nil, errors.NewNotFoundError("Project not found.", nil)
	})
}
