package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"hackafrica-web/internal/models"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.Do(ctx, http.MethodGet, "/projects", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var out models.Project
	err := c.Do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out, false)
	return out, err
}

// ListUserProjects returns the projects of the logged-in user.
func (c *Client) ListUserProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.Do(ctx, http.MethodGet, "/projects/user", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, in models.NewProject) (models.Project, error) {
	var out models.Project
	err := c.Do(ctx, http.MethodPost, "/projects", in, &out, true)
	return out, err
}
