// Package router declares the portal's routes and gates them by session.
package router

import (
	"log/slog"
	"net/http"

	"hackafrica-web/internal/config"
	"hackafrica-web/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Access is who may open a route.
type Access int

const (
	// Guest routes are the login and register forms outside the shell.
	Guest Access = iota
	// Public routes render inside the shell for everyone.
	Public
	// Member routes need a token.
	Member
	// Admin routes are only offered to the admin role. The backend still
	// authorizes every call they make.
	Admin
)

func (a Access) String() string {
	switch a {
	case Guest:
		return "guest"
	case Public:
		return "public"
	case Member:
		return "member"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Table lists every page route of the portal.
func Table(h *handlers.Handler) []Route {
	return []Route{
		{http.MethodGet, "/login", Guest, h.LoginForm},
		{http.MethodPost, "/login", Guest, h.Login},
		{http.MethodGet, "/register", Guest, h.RegisterForm},
		{http.MethodPost, "/register", Guest, h.Register},

		{http.MethodGet, "/", Public, h.Home},
		{http.MethodGet, "/hackathons", Public, h.Hackathons},
		{http.MethodGet, "/hackathons/:id", Public, h.Hackathon},
		{http.MethodPost, "/hackathons/:id/participate", Public, h.Participate},
		{http.MethodGet, "/projects", Public, h.Projects},
		{http.MethodGet, "/projects/:id", Public, h.Project},
		{http.MethodPost, "/logout", Public, h.Logout},

		{http.MethodGet, "/profile", Member, h.Profile},
		{http.MethodGet, "/submit-project/:id", Member, h.SubmitProjectForm},
		{http.MethodPost, "/submit-project/:id", Member, h.SubmitProject},

		{http.MethodGet, "/create-hackathon", Admin, h.CreateHackathonForm},
		{http.MethodPost, "/create-hackathon/image", Admin, h.UploadHackathonImage},
		{http.MethodPost, "/create-hackathon", Admin, h.CreateHackathon},
	}
}

// Gate enforces access on top of the session loaded by handlers.LoadSession.
func Gate(access Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := handlers.CurrentSession(c)
		switch access {
		case Guest:
			if sess.Authenticated() {
				c.Redirect(http.StatusSeeOther, "/")
				c.Abort()
				return
			}
		case Member:
			if !sess.Authenticated() {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
		case Admin:
			if !sess.Authenticated() {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
			if !sess.IsAdmin() {
				slog.Info("Non-admin opened an admin view", "path", c.Request.URL.Path, "role", sess.Role)
				c.Redirect(http.StatusSeeOther, "/hackathons")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// New builds the gin engine: session loading, the route table, the JSON
// group with CORS, and the 404 page.
func New(cfg *config.Config, h *handlers.Handler, html render.HTMLRender) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.HTMLRender = html
	r.MaxMultipartMemory = 8 << 20

	r.Use(h.LoadSession)

	for _, rt := range Table(h) {
		r.Handle(rt.Method, rt.Path, Gate(rt.Access), rt.Handler)
	}

	// Configure CORS for script clients of the JSON endpoints
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = true

	api := r.Group("/api")
	api.Use(cors.New(corsConfig))
	{
		api.GET("/session", h.SessionJSON)
		api.GET("/participation", h.ParticipationJSON)
		// Preflights are answered by the cors middleware before this runs.
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	r.NoRoute(h.NotFound)
	return r
}
