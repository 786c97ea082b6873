// Package submission validates and sends the project and hackathon forms.
package submission

import (
	"context"

	"hackafrica-web/internal/forms"
	"hackafrica-web/internal/models"
)

// ProjectDraft is the submit-project form.
type ProjectDraft struct {
	HackathonID string   `form:"-"`
	Title       string   `form:"title" validate:"notblank" msg:"Title and description are required"`
	Description string   `form:"description" validate:"notblank" msg:"Title and description are required"`
	DemoURL     string   `form:"demoUrl" validate:"omitempty,url" msg:"Demo URL must be a valid link"`
	ImageURL    string   `form:"imageUrl" validate:"omitempty,url" msg:"Image URL must be a valid link"`
	Team        []string `form:"-"`
}

// NewProjectDraft starts a draft with the current user already on the team.
func NewProjectDraft(hackathonID, userID string) ProjectDraft {
	d := ProjectDraft{HackathonID: hackathonID, Team: []string{}}
	if userID != "" {
		d.Team = append(d.Team, userID)
	}
	return d
}

// ProjectCreator is the backend call behind the form.
type ProjectCreator interface {
	CreateProject(ctx context.Context, in models.NewProject) (models.Project, error)
}

// SubmitProject validates d and, only if it passes, creates the project.
func SubmitProject(ctx context.Context, api ProjectCreator, d ProjectDraft) (models.Project, error) {
	if err := forms.Validate(d); err != nil {
		return models.Project{}, err
	}
	return api.CreateProject(ctx, models.NewProject{
		Title:       d.Title,
		Description: d.Description,
		DemoURL:     d.DemoURL,
		ImageURL:    d.ImageURL,
		Team:        d.Team,
		Hackathon:   d.HackathonID,
	})
}
