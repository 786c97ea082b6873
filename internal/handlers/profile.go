package handlers

import (
	"net/http"

	"hackafrica-web/internal/fetch"
	"hackafrica-web/internal/models"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Profile handles GET /profile
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		user     fetch.Result[models.User]
		projects fetch.Result[[]models.Project]
		g        errgroup.Group
	)
	g.Go(func() error {
		user = fetch.Load(ctx, "profile", h.API.Profile)
		return nil
	})
	g.Go(func() error {
		projects = fetch.Load(ctx, "user projects", h.API.ListUserProjects)
		return nil
	})
	_ = g.Wait()

	if h.sessionExpired(c, user.Err) || h.sessionExpired(c, projects.Err) {
		return
	}

	data := views.ProfilePage{Page: h.page(c, "Profile")}
	switch {
	case !user.Ok():
		data.Error = errorMessage(user.Err, msgLoadFailed)
	case !projects.Ok():
		data.Error = errorMessage(projects.Err, msgLoadFailed)
	}
	data.User = user.Data
	data.Projects = projects.Data
	c.HTML(http.StatusOK, views.Profile, data)
}
