package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"hackafrica-web/internal/models"
)

// ParticipateResult is the reply of the participate endpoint.
type ParticipateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListHackathons returns all hackathons, or only running ones when activeOnly is set.
func (c *Client) ListHackathons(ctx context.Context, activeOnly bool) ([]models.Hackathon, error) {
	path := "/hackathons"
	if activeOnly {
		path += "?status=active"
	}
	var out []models.Hackathon
	if err := c.Do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHackathon(ctx context.Context, id string) (models.Hackathon, error) {
	var out models.Hackathon
	err := c.Do(ctx, http.MethodGet, "/hackathons/"+url.PathEscape(id), nil, &out, false)
	return out, err
}

// CheckParticipation asks whether the current user joined hackathon id.
func (c *Client) CheckParticipation(ctx context.Context, id string) (bool, error) {
	var out struct {
		IsParticipating bool `json:"isParticipating"`
	}
	err := c.Do(ctx, http.MethodGet, "/hackathons/"+url.PathEscape(id)+"/check-participation", nil, &out, true)
	return out.IsParticipating, err
}

func (c *Client) Participate(ctx context.Context, id string) (ParticipateResult, error) {
	var out ParticipateResult
	err := c.Do(ctx, http.MethodPost, "/hackathons/"+url.PathEscape(id)+"/participate", struct{}{}, &out, true)
	return out, err
}

func (c *Client) CreateHackathon(ctx context.Context, in models.NewHackathon) (models.Hackathon, error) {
	var out models.Hackathon
	err := c.Do(ctx, http.MethodPost, "/hackathons", in, &out, true)
	return out, err
}
