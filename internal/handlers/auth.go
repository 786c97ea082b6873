package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hackafrica-web/internal/forms"
	"hackafrica-web/internal/models"
	"hackafrica-web/internal/participation"
	"hackafrica-web/internal/session"
	"hackafrica-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email" msg:"Please enter a valid email"`
	Password string `form:"password" validate:"required" msg:"Password is required"`
}

type registerForm struct {
	Name     string `form:"name" validate:"notblank" msg:"Name is required"`
	Email    string `form:"email" validate:"required,email" msg:"Please enter a valid email"`
	Password string `form:"password" validate:"required" msg:"Password is required"`
	Role     string `form:"role" validate:"oneof=admin participant" msg:"Please choose a role"`
}

// LoginForm handles GET /login
func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, views.AuthPage{Page: h.page(c, "Login")})
}

// Login handles POST /login. The token is stored under a fresh session id,
// then a participation stashed before login is replayed.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		slog.Debug("Failed to bind login form", "error", err)
	}
	form.Email = strings.TrimSpace(form.Email)

	fail := func(status int, msg string) {
		data := views.AuthPage{Page: h.page(c, "Login"), Email: form.Email}
		data.Error = msg
		c.HTML(status, views.Login, data)
	}

	var invalid *forms.ValidationError
	if err := forms.Validate(form); errors.As(err, &invalid) {
		fail(http.StatusUnprocessableEntity, invalid.Message)
		return
	}

	token, err := h.API.Login(c.Request.Context(), models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		slog.Info("Login failed", "email", form.Email, "error", err)
		fail(http.StatusOK, errorMessage(err, "Login failed"))
		return
	}

	id, err := h.renewSID(c)
	if err != nil {
		slog.Error("Failed to renew session id", "error", err)
		fail(http.StatusInternalServerError, "Login failed")
		return
	}
	sess, err := h.Sessions.Login(c.Request.Context(), id, token)
	if err != nil {
		slog.Error("Failed to store session", "error", err)
		fail(http.StatusInternalServerError, "Login failed")
		return
	}
	h.setSession(c, sess)
	slog.Info("User logged in", "role", sess.Role, "user", sess.UserID)

	if h.resumePending(c, id) {
		return
	}
	if sess.IsAdmin() {
		h.redirect(c, "/hackathons")
		return
	}
	h.redirect(c, "/projects")
}

// resumePending replays the participate action stashed by a guest.
func (h *Handler) resumePending(c *gin.Context, id string) bool {
	ctx := c.Request.Context()
	hackathonID, err := h.Sessions.TakePending(ctx, id)
	if err != nil {
		slog.Error("Failed to read pending participation", "error", err)
		return false
	}
	if hackathonID == "" {
		return false
	}

	slog.Info("Resuming participation after login", "hackathon", hackathonID)
	stash := participation.StashFunc(func(ctx context.Context, hackathonID string) error {
		return h.Sessions.StashPending(ctx, id, hackathonID)
	})
	out := participation.Join(ctx, h.API, stash, true, hackathonID)
	h.follow(c, out, "/hackathons/"+hackathonID)
	return true
}

// RegisterForm handles GET /register
func (h *Handler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.Register, views.AuthPage{
		Page: h.page(c, "Register"),
		Role: models.RoleParticipant,
	})
}

// Register handles POST /register
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		slog.Debug("Failed to bind register form", "error", err)
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if form.Role == "" {
		form.Role = models.RoleParticipant
	}

	fail := func(status int, msg string) {
		data := views.AuthPage{Page: h.page(c, "Register"), Email: form.Email, Name: form.Name, Role: form.Role}
		data.Error = msg
		c.HTML(status, views.Register, data)
	}

	var invalid *forms.ValidationError
	if err := forms.Validate(form); errors.As(err, &invalid) {
		fail(http.StatusUnprocessableEntity, invalid.Message)
		return
	}

	err := h.API.Register(c.Request.Context(), models.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		slog.Info("Registration failed", "email", form.Email, "error", err)
		fail(http.StatusOK, errorMessage(err, "Registration failed"))
		return
	}

	h.flash(c, "Registration successful. Please login.")
	h.redirect(c, "/login")
}

// Logout handles POST /logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Clear(c.Request.Context(), sessionID(c)); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	h.setSession(c, session.Session{})
	h.redirect(c, "/login")
}
