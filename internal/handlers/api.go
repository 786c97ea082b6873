package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/participation"

	"github.com/gin-gonic/gin"
)

// SessionJSON handles GET /api/session. The token itself is never exposed.
func (h *Handler) SessionJSON(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": sess.Authenticated(),
		"role":          sess.Role,
		"name":          sess.Name,
		"userId":        sess.UserID,
	})
}

// ParticipationJSON handles GET /api/participation: the participation map of
// the signed-in user over all hackathons, optionally narrowed by q.
func (h *Handler) ParticipationJSON(c *gin.Context) {
	if !CurrentSession(c).Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	ctx := c.Request.Context()
	hackathons, err := h.API.ListHackathons(ctx, false)
	if err != nil {
		slog.Error("Failed to fetch hackathons for participation", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, apiclient.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": errorMessage(err, "Failed to fetch data")})
		return
	}

	hackathons = FilterHackathons(hackathons, c.Query("q"))
	status, err := participation.CheckAll(ctx, h.API, hackathons, h.CheckConcurrency)
	if err != nil {
		slog.Debug("Participation checks abandoned", "error", err)
		return
	}
	c.JSON(http.StatusOK, status)
}
