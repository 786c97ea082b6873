package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/fetch"
	"hackafrica-web/internal/forms"
	"hackafrica-web/internal/models"
	"hackafrica-web/internal/submission"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Projects handles GET /projects. A fresh "project created" mark shows the
// success banner; an expired one is dropped.
func (h *Handler) Projects(c *gin.Context) {
	res := fetch.Load(c.Request.Context(), "projects", h.API.ListProjects)
	if h.sessionExpired(c, res.Err) {
		return
	}

	data := views.ProjectsPage{Page: h.page(c, "Projects")}
	if res.Ok() {
		data.Projects = res.Data
	} else {
		data.Error = errorMessage(res.Err, msgLoadFailed)
	}
	data.Banner, data.BannerRemains = h.banner(c)
	c.HTML(http.StatusOK, views.Projects, data)
}

func (h *Handler) banner(c *gin.Context) (bool, time.Duration) {
	id := sessionID(c)
	if id == "" {
		return false, 0
	}
	ctx := c.Request.Context()
	at, ok, err := h.Sessions.ProjectCreatedAt(ctx, id)
	if err != nil {
		slog.Error("Failed to read project banner mark", "error", err)
		return false, 0
	}
	if !ok {
		return false, 0
	}
	remains := h.BannerDelay - h.now().Sub(at)
	if remains > 0 {
		return true, remains
	}
	if err := h.Sessions.ClearProjectCreated(ctx, id); err != nil {
		slog.Error("Failed to drop project banner mark", "error", err)
	}
	return false, 0
}

// Project handles GET /projects/:id
func (h *Handler) Project(c *gin.Context) {
	id := c.Param("id")
	res := fetch.Load(c.Request.Context(), "project", func(ctx context.Context) (models.Project, error) {
		return h.API.GetProject(ctx, id)
	})
	if h.sessionExpired(c, res.Err) {
		return
	}

	switch {
	case errors.Is(res.Err, apiclient.ErrNotFound):
		c.HTML(http.StatusNotFound, views.Message, views.MessagePage{
			Page:    h.page(c, "Project"),
			Heading: "Project not found",
			Text:    "The project you are looking for does not exist.",
		})
	case !res.Ok():
		data := views.ProjectPage{Page: h.page(c, "Project")}
		data.Error = errorMessage(res.Err, msgLoadFailed)
		c.HTML(http.StatusOK, views.Project, data)
	default:
		c.HTML(http.StatusOK, views.Project, views.ProjectPage{
			Page:    h.page(c, res.Data.Title),
			Project: res.Data,
		})
	}
}

// SubmitProjectForm handles GET /submit-project/:id
func (h *Handler) SubmitProjectForm(c *gin.Context) {
	id := c.Param("id")
	draft := submission.NewProjectDraft(id, CurrentSession(c).UserID)
	h.renderSubmit(c, http.StatusOK, draft, "")
}

// SubmitProject handles POST /submit-project/:id. The current user is on
// the team from the start; blank title or description never reach the backend.
func (h *Handler) SubmitProject(c *gin.Context) {
	sess := CurrentSession(c)
	draft := submission.NewProjectDraft(c.Param("id"), sess.UserID)
	if err := c.ShouldBindWith(&draft, binding.Form); err != nil {
		slog.Debug("Failed to bind project draft", "error", err)
	}

	ctx := c.Request.Context()
	created, err := submission.SubmitProject(ctx, h.API, draft)
	if h.sessionExpired(c, err) {
		return
	}
	if err != nil {
		var invalid *forms.ValidationError
		if errors.As(err, &invalid) {
			h.renderSubmit(c, http.StatusUnprocessableEntity, draft, invalid.Message)
			return
		}
		h.renderSubmit(c, http.StatusOK, draft, errorMessage(err, "Failed to submit project"))
		return
	}

	slog.Info("Project submitted", "project", created.ID, "hackathon", draft.HackathonID)
	if err := h.Sessions.MarkProjectCreated(ctx, h.ensureSID(c), h.now()); err != nil {
		slog.Error("Failed to mark project creation", "error", err)
	}
	h.redirect(c, "/projects")
}

func (h *Handler) renderSubmit(c *gin.Context, status int, draft submission.ProjectDraft, msg string) {
	data := views.SubmitProjectPage{Draft: draft}
	res := fetch.Load(c.Request.Context(), "hackathon", func(ctx context.Context) (models.Hackathon, error) {
		return h.API.GetHackathon(ctx, draft.HackathonID)
	})
	if h.sessionExpired(c, res.Err) {
		return
	}
	if res.Ok() {
		data.Hackathon = res.Data
	}
	data.Page = h.page(c, "Submit Project")
	data.Error = msg
	c.HTML(status, views.SubmitProject, data)
}
