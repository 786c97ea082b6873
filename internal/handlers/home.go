package handlers

import (
	"context"
	"net/http"
	"sort"

	"hackafrica-web/internal/fetch"
	"hackafrica-web/internal/models"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const homeLimit = 3

// Home handles GET /. Active hackathons and projects are loaded together.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		hackathons fetch.Result[[]models.Hackathon]
		projects   fetch.Result[[]models.Project]
		g          errgroup.Group
	)
	g.Go(func() error {
		hackathons = fetch.Load(ctx, "active hackathons", func(ctx context.Context) ([]models.Hackathon, error) {
			return h.API.ListHackathons(ctx, true)
		})
		return nil
	})
	g.Go(func() error {
		projects = fetch.Load(ctx, "projects", h.API.ListProjects)
		return nil
	})
	_ = g.Wait()

	if h.sessionExpired(c, hackathons.Err) || h.sessionExpired(c, projects.Err) {
		return
	}

	data := views.HomePage{Page: h.page(c, "Home")}
	if hackathons.Ok() {
		latest := append([]models.Hackathon(nil), hackathons.Data...)
		sort.SliceStable(latest, func(i, j int) bool {
			return latest[i].StartDate.After(latest[j].StartDate)
		})
		data.Hackathons = h.cards(firstN(latest, homeLimit), nil)
	}
	if projects.Ok() {
		data.Projects = firstN(projects.Data, homeLimit)
	}
	if !hackathons.Ok() || !projects.Ok() {
		data.Error = msgLoadFailed
	}
	c.HTML(http.StatusOK, views.Home, data)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
