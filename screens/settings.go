package screens

import (
	"context"
	"fmt"
	"strings"

	"food-delivery-dashboard/models"
)

type ProjectSettings struct {
	Project models.Project             `json:"project"`
	APIKey  string                     `json:"api_key"`
	DBKey   string                     `json:"db_key"`
	Members []models.ProjectMembership `json:"members"`
	Stats   models.ProjectStats        `json:"stats"`
}

type Settings struct {
	projects Projects
}

func NewSettings(projects Projects) *Settings {
	return &Settings{projects: projects}
}

func (s *Settings) Settings(ctx context.Context, project models.Project) (*ProjectSettings, error) {
	members, err := s.projects.Members(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	for i := range members {
		if members[i].User != nil {
			members[i].User.ExternalProjects = nil
		}
	}
	return &ProjectSettings{
		Project: project,
		APIKey:  mask(project.APIKey),
		DBKey:   mask(project.DBKey),
		Members: members,
		Stats:   project.Stats,
	}, nil
}

// mask hides all but the last four characters of a credential.
func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
