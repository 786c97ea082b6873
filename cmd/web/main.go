package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/config"
	"hackafrica-web/internal/database"
	"hackafrica-web/internal/handlers"
	"hackafrica-web/internal/logger"
	"hackafrica-web/internal/router"
	"hackafrica-web/internal/session"
	"hackafrica-web/internal/upload"
	"hackafrica-web/internal/views"
)

func main() {
	// 1. Initialize Configuration
	cfg := config.Load()

	// 2. Initialize Structured Logger
	logger.Setup(cfg.Env)
	slog.Info("Starting HackAfrica web server", "env", cfg.Env, "port", cfg.Port, "api", cfg.APIBaseURL)

	// 3. Initialize the session store
	db, err := database.Init(cfg)
	if err != nil {
		slog.Error("Critical error: unable to initialize database", "error", err)
		os.Exit(1)
	}
	sessions := session.NewStore(db)
	sessions.OnChange(func(id string, s session.Session) {
		if s.Authenticated() {
			slog.Debug("Session signed in", "session", id, "role", s.Role)
			return
		}
		slog.Debug("Session signed out", "session", id)
	})

	// 4. Backend client; every 401 ends the session it was made for
	api := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions)
	api.OnUnauthorized = sessions.ClearCurrent

	// 5. Image host and templates
	images, err := upload.NewHost(cfg)
	if err != nil {
		slog.Error("Critical error: unable to configure image host", "error", err)
		os.Exit(1)
	}
	pages, err := views.New()
	if err != nil {
		slog.Error("Critical error: unable to parse templates", "error", err)
		os.Exit(1)
	}

	// 6. Initialize Gin Router
	h := handlers.New(cfg, api, sessions, images)
	r := router.New(cfg, h, pages)

	// 7. Start the Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Critical server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
