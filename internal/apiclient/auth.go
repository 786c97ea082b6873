package apiclient

import (
	"context"
	"errors"
	"net/http"

	"hackafrica-web/internal/models"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, in models.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", in, &out, false); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login reply carried no token")
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, in models.Registration) error {
	return c.Do(ctx, http.MethodPost, "/auth/register", in, nil, false)
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.Do(ctx, http.MethodGet, "/users/profile", nil, &out, true)
	return out, err
}
