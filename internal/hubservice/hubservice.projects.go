package hubservice

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/models"
)

// CreateProject creates a project for a user. The generated token is the
// device-facing credential: it authenticates the websocket channel and keys
// every ingestion call.
func (s *HubService) CreateProject(ctx context.Context, userID, projectName, description, developmentBoard string) (*models.Project, error) {
	now := time.Now()
	project := &models.Project{
		ProjectID:        nuts.NID("prj", 12),
		ProjectName:      projectName,
		Description:      description,
		DevelopmentBoard: developmentBoard,
		Token:            uuid.NewString(),
		CreatedAt:        now,
		UpdatedAt:        now,
		Sensors:          []*models.Sensor{},
		SignalGroups:     []*models.SignalGroup{},
		CombinedGraphs:   []*models.CombinedGraph{},
	}

	if err := s.Projects.CreateForUser(ctx, userID, project); err != nil {
		return nil, err
	}

	nuts.L.Infof("[ProjectService] Created project %s (%s) for user %s", project.ProjectName, project.ProjectID, userID)
	return project, nil
}

// ListUserProjects returns a user's projects as summaries, newest first.
func (s *HubService) ListUserProjects(ctx context.Context, userID string) ([]models.ProjectSummary, error) {
	projects, err := s.Projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sorted := make([]*models.Project, len(projects))
	copy(sorted, projects)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	summaries := make([]models.ProjectSummary, 0, len(sorted))
	for _, p := range sorted {
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// GetProject returns one project by id.
func (s *HubService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	return s.Projects.Get(ctx, projectID)
}

// UpdateProject shallow-merges the provided fields into the project. Only
// name, description and board are writable here.
func (s *HubService) UpdateProject(ctx context.Context, projectID, projectName, description, developmentBoard string) (*models.Project, error) {
	fields := &models.Project{
		ProjectName:      projectName,
		Description:      description,
		DevelopmentBoard: developmentBoard,
	}
	return s.Projects.Update(ctx, projectID, fields)
}

// DeleteProject removes a project. Open websocket sessions keyed by the
// project's token are not closed here; they fail on their next lookup.
func (s *HubService) DeleteProject(ctx context.Context, projectID string) error {
	project, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.Projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.TokenCache.Invalidate(ctx, project.Token)
	nuts.L.Infof("[ProjectService] Deleted project %s", projectID)
	return nil
}

// GetProjectDataByToken is the device pull path: the full sensor list of the
// project bound to the token.
func (s *HubService) GetProjectDataByToken(ctx context.Context, token string) ([]*models.Sensor, error) {
	project, err := s.Projects.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	s.TokenCache.Store(ctx, token, project.ProjectID)
	return project.Sensors, nil
}

// AuthenticateDeviceToken resolves a device token to its project id, serving
// the websocket auth handshake. Hits the token cache before scanning.
func (s *HubService) AuthenticateDeviceToken(ctx context.Context, token string) (string, error) {
	if projectID, ok := s.TokenCache.Resolve(ctx, token); ok {
		return projectID, nil
	}
	project, err := s.Projects.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}
	s.TokenCache.Store(ctx, token, project.ProjectID)
	return project.ProjectID, nil
}
