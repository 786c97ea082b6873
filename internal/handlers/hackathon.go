package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/fetch"
	"hackafrica-web/internal/forms"
	"hackafrica-web/internal/models"
	"hackafrica-web/internal/participation"
	"hackafrica-web/internal/submission"
	"hackafrica-web/internal/upload"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// FilterHackathons keeps hackathons whose title or description contains
// query, ignoring case. An empty query keeps everything.
func FilterHackathons(hackathons []models.Hackathon, query string) []models.Hackathon {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return hackathons
	}
	out := make([]models.Hackathon, 0, len(hackathons))
	for _, hk := range hackathons {
		if strings.Contains(strings.ToLower(hk.Title), query) ||
			strings.Contains(strings.ToLower(hk.Description), query) {
			out = append(out, hk)
		}
	}
	return out
}

func (h *Handler) cards(hackathons []models.Hackathon, status map[string]bool) []views.HackathonCard {
	now := h.now()
	cards := make([]views.HackathonCard, 0, len(hackathons))
	for _, hk := range hackathons {
		cards = append(cards, views.HackathonCard{
			Hackathon: hk,
			Active:    hk.IsActive(now),
			Status:    participation.Of(status, hk.ID),
		})
	}
	return cards
}

// checkParticipation runs the batch check for a signed-in user. Guests get
// no map, so every card stays Unknown.
func (h *Handler) checkParticipation(c *gin.Context, hackathons []models.Hackathon) map[string]bool {
	if !CurrentSession(c).Authenticated() || len(hackathons) == 0 {
		return nil
	}
	ctx := c.Request.Context()
	status, err := participation.CheckAll(ctx, h.API, hackathons, h.CheckConcurrency)
	if err != nil {
		slog.Debug("Participation checks abandoned", "error", err)
	}

	// A 401 on any check has cleared the session by now.
	if sess, err := h.Sessions.Get(ctx, sessionID(c)); err == nil {
		h.setSession(c, sess)
	}
	return status
}

// Hackathons handles GET /hackathons
func (h *Handler) Hackathons(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	res := fetch.Load(c.Request.Context(), "hackathons", func(ctx context.Context) ([]models.Hackathon, error) {
		return h.API.ListHackathons(ctx, false)
	})
	if h.sessionExpired(c, res.Err) {
		return
	}

	if !res.Ok() {
		data := views.HackathonsPage{Page: h.page(c, "Hackathons"), Query: query}
		data.Error = errorMessage(res.Err, msgLoadFailed)
		c.HTML(http.StatusOK, views.Hackathons, data)
		return
	}

	if query != "" {
		slog.Debug("Searching hackathons", "query", query)
	}
	hackathons := FilterHackathons(res.Data, query)
	cards := h.cards(hackathons, h.checkParticipation(c, hackathons))
	c.HTML(http.StatusOK, views.Hackathons, views.HackathonsPage{
		Page:  h.page(c, "Hackathons"),
		Cards: cards,
		Query: query,
	})
}

// Hackathon handles GET /hackathons/:id
func (h *Handler) Hackathon(c *gin.Context) {
	id := c.Param("id")

	res := fetch.Load(c.Request.Context(), "hackathon", func(ctx context.Context) (models.Hackathon, error) {
		return h.API.GetHackathon(ctx, id)
	})
	if h.sessionExpired(c, res.Err) {
		return
	}

	switch {
	case errors.Is(res.Err, apiclient.ErrNotFound):
		c.HTML(http.StatusNotFound, views.Hackathon, views.HackathonPage{
			Page:     h.page(c, "Hackathon"),
			NotFound: true,
		})
		return
	case !res.Ok():
		data := views.HackathonPage{Page: h.page(c, "Hackathon")}
		data.Error = errorMessage(res.Err, msgLoadFailed)
		c.HTML(http.StatusOK, views.Hackathon, data)
		return
	}

	hackathons := []models.Hackathon{res.Data}
	card := h.cards(hackathons, h.checkParticipation(c, hackathons))[0]
	c.HTML(http.StatusOK, views.Hackathon, views.HackathonPage{
		Page: h.page(c, res.Data.Title),
		Card: card,
	})
}

// Participate handles POST /hackathons/:id/participate
func (h *Handler) Participate(c *gin.Context) {
	id := c.Param("id")
	sess := CurrentSession(c)

	stash := participation.StashFunc(func(ctx context.Context, hackathonID string) error {
		return h.Sessions.StashPending(ctx, h.ensureSID(c), hackathonID)
	})
	out := participation.Join(c.Request.Context(), h.API, stash, sess.Authenticated(), id)
	h.follow(c, out, localPath(c.PostForm("back"), "/hackathons/"+id))
}

// follow applies a participation outcome. Without a redirect the user stays
// on back and sees the notice there.
func (h *Handler) follow(c *gin.Context, out participation.Outcome, back string) {
	h.flash(c, out.Notice)
	if out.Redirect != "" {
		h.redirect(c, out.Redirect)
		return
	}
	h.redirect(c, back)
}

// CreateHackathonForm handles GET /create-hackathon
func (h *Handler) CreateHackathonForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.CreateHackathon, views.CreateHackathonPage{
		Page: h.page(c, "Create Hackathon"),
	})
}

// UploadHackathonImage handles POST /create-hackathon/image, the first
// phase of the create form. The typed fields are echoed back untouched.
func (h *Handler) UploadHackathonImage(c *gin.Context) {
	var draft submission.HackathonDraft
	if err := c.ShouldBindWith(&draft, binding.Form); err != nil {
		slog.Debug("Failed to bind hackathon draft", "error", err)
	}
	data := views.CreateHackathonPage{Page: h.page(c, "Create Hackathon")}

	fh, err := c.FormFile("image")
	if err != nil {
		data.Draft = draft
		data.Error = "Please select an image to upload."
		c.HTML(http.StatusBadRequest, views.CreateHackathon, data)
		return
	}
	f, err := fh.Open()
	if err != nil {
		slog.Error("Failed to open uploaded image", "error", err)
		data.Draft = draft
		data.UploadState = upload.Failed
		data.Error = upload.FailedMessage
		c.HTML(http.StatusOK, views.CreateHackathon, data)
		return
	}
	defer f.Close()

	tracker := upload.NewTracker(h.Images)
	url, err := tracker.Upload(c.Request.Context(), fh.Filename, f)
	draft.ImageURL = url
	data.Draft = draft
	data.UploadState = tracker.State()
	if err != nil {
		data.Error = upload.FailedMessage
	}
	c.HTML(http.StatusOK, views.CreateHackathon, data)
}

// CreateHackathon handles POST /create-hackathon. A draft without an
// uploaded image is refused before the backend is called.
func (h *Handler) CreateHackathon(c *gin.Context) {
	var draft submission.HackathonDraft
	if err := c.ShouldBindWith(&draft, binding.Form); err != nil {
		slog.Debug("Failed to bind hackathon draft", "error", err)
	}

	created, err := submission.CreateHackathon(c.Request.Context(), h.API, draft)
	if h.sessionExpired(c, err) {
		return
	}
	if err != nil {
		data := views.CreateHackathonPage{Page: h.page(c, "Create Hackathon"), Draft: draft}
		var invalid *forms.ValidationError
		if errors.As(err, &invalid) {
			data.Error = invalid.Message
			c.HTML(http.StatusUnprocessableEntity, views.CreateHackathon, data)
			return
		}
		data.Error = errorMessage(err, "Failed to create hackathon")
		c.HTML(http.StatusOK, views.CreateHackathon, data)
		return
	}

	slog.Info("Hackathon created", "hackathon", created.ID, "title", created.Title)
	h.flash(c, "Hackathon created successfully!")
	if created.ID == "" {
		h.redirect(c, "/hackathons")
		return
	}
	h.redirect(c, "/hackathons/"+created.ID)
}
