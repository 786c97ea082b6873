// Package handlers renders the portal views and runs their form actions.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/config"
	"hackafrica-web/internal/session"
	"hackafrica-web/internal/upload"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"

	cookieMaxAge = 30 * 24 * 60 * 60

	msgSessionExpired = "Your session has expired. Please login again."
	msgLoadFailed     = "Failed to load data. Please try again."
)

// Handler contains injected dependencies for the HTTP handlers
type Handler struct {
	API      *apiclient.Client
	Sessions *session.Store
	Images   upload.Host

	CheckConcurrency int
	BannerDelay      time.Duration
	CookieName       string
	CookieSecure     bool

	// Now is the clock behind active badges and the project banner.
	Now func() time.Time
}

// New creates a Handler from the application configuration.
func New(cfg *config.Config, api *apiclient.Client, sessions *session.Store, images upload.Host) *Handler {
	return &Handler{
		API:              api,
		Sessions:         sessions,
		Images:           images,
		CheckConcurrency: cfg.CheckConcurrency,
		BannerDelay:      cfg.BannerDelay,
		CookieName:       cfg.SessionCookie,
		CookieSecure:     cfg.CookieSecure,
		Now:              time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// LoadSession binds the browser's session id to the request context and
// loads the session once per request.
func (h *Handler) LoadSession(c *gin.Context) {
	id, _ := c.Cookie(h.CookieName)
	ctx := session.WithID(c.Request.Context(), id)
	c.Request = c.Request.WithContext(ctx)

	sess, err := h.Sessions.Get(ctx, id)
	if err != nil {
		slog.Error("Failed to load session", "error", err)
	}
	c.Set(sessionKey, sess)
	c.Next()
}

// CurrentSession returns the session loaded by LoadSession.
func CurrentSession(c *gin.Context) session.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(session.Session)
	return sess
}

func (h *Handler) setSession(c *gin.Context, sess session.Session) {
	c.Set(sessionKey, sess)
}

func sessionID(c *gin.Context) string {
	return session.IDFrom(c.Request.Context())
}

// ensureSID returns the request's session id, issuing a cookie first if the
// browser has none yet.
func (h *Handler) ensureSID(c *gin.Context) string {
	if id := sessionID(c); id != "" {
		return id
	}
	id := session.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, id, cookieMaxAge, "/", "", h.CookieSecure, true)
	c.Request = c.Request.WithContext(session.WithID(c.Request.Context(), id))
	return id
}

// renewSID moves the request to a fresh session id and issues its cookie.
// Values other than the identity follow the new id.
func (h *Handler) renewSID(c *gin.Context) (string, error) {
	id := session.NewID()
	if err := h.Sessions.Rotate(c.Request.Context(), sessionID(c), id); err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, id, cookieMaxAge, "/", "", h.CookieSecure, true)
	c.Request = c.Request.WithContext(session.WithID(c.Request.Context(), id))
	return id, nil
}

// NavItems builds the side menu. The create link is a display affordance
// for admins; the backend still authorizes the call.
func NavItems(sess session.Session, current string) []views.NavItem {
	items := []views.NavItem{
		{Path: "/", Label: "Home"},
		{Path: "/hackathons", Label: "Hackathons"},
		{Path: "/projects", Label: "Projects"},
		{Path: "/profile", Label: "Profile"},
	}
	if sess.IsAdmin() {
		items = append(items, views.NavItem{Path: "/create-hackathon", Label: "Create Hackathon"})
	}
	for i := range items {
		items[i].Active = items[i].Path == current
	}
	return items
}

// page collects the shell data and consumes the pending flash.
func (h *Handler) page(c *gin.Context, title string) views.Page {
	sess := CurrentSession(c)
	p := views.Page{
		Title:   title,
		Session: sess,
		Nav:     NavItems(sess, c.Request.URL.Path),
		Search:  strings.TrimSpace(c.Query("q")),
		Year:    h.now().Year(),
	}
	if id := sessionID(c); id != "" {
		flash, err := h.Sessions.TakeFlash(c.Request.Context(), id)
		if err != nil {
			slog.Error("Failed to read flash", "error", err)
		}
		p.Flash = flash
	}
	return p
}

// flash stores msg for the next rendered page.
func (h *Handler) flash(c *gin.Context, msg string) {
	if msg == "" {
		return
	}
	id := h.ensureSID(c)
	if err := h.Sessions.SetFlash(c.Request.Context(), id, msg); err != nil {
		slog.Error("Failed to store flash", "error", err)
	}
}

func (h *Handler) redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
	c.Abort()
}

// sessionExpired handles an Unauthorized reply from any view. The API
// client already cleared the session; the user is sent to log in.
func (h *Handler) sessionExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	h.setSession(c, session.Session{})
	h.flash(c, msgSessionExpired)
	h.redirect(c, "/login")
	return true
}

// errorMessage turns a backend error into the inline message of a view.
func errorMessage(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apiclient.ErrNetworkUnavailable):
		return "Network error. Please check your connection."
	default:
		return apiclient.MessageOr(err, fallback)
	}
}

// localPath accepts only same-site absolute paths as redirect targets.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

// NotFound renders the shell's 404 page.
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, views.Message, views.MessagePage{
		Page:    h.page(c, "Not Found"),
		Heading: "Page not found",
		Text:    "The page you are looking for does not exist.",
	})
}
