// Package httpapi exposes the server's domain services as a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/config"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// Server wires the domain services into an HTTP server with JWT auth,
// an admin-key gate on invite management, and CORS for browser clients.
type Server struct {
	config  *config.Config
	logger  logging.Logger
	users   *services.UserService
	tasks   *services.TaskService
	invites *services.InviteService
	avatars *services.AvatarService
	nowFn   func() time.Time
}

// NewServer constructs a Server over the given services.
func NewServer(cfg *config.Config, logger logging.Logger,
	us *services.UserService, ts *services.TaskService,
	is *services.InviteService, as *services.AvatarService) *Server {
	return &Server{
		config:  cfg,
		logger:  logger,
		users:   us,
		tasks:   ts,
		invites: is,
		avatars: as,
		nowFn:   time.Now,
	}
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// public endpoints
	api.HandleFunc("/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")

	// protected routes
	private := api.NewRoute().Subrouter()
	private.Use(s.authMiddleware)
	private.HandleFunc("/me", s.handleMe).Methods("GET")
	private.HandleFunc("/tasks", s.handleListTasks).Methods("GET")
	private.HandleFunc("/tasks", s.handleCreateTask).Methods("POST")
	private.HandleFunc("/tasks/{id}/done", s.handleMarkDone).Methods("POST")
	private.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods("DELETE")
	private.HandleFunc("/avatar/upload", s.handleAvatarUpload).Methods("POST")

	// invite management, gated by the admin key
	admin := api.NewRoute().Subrouter()
	admin.Use(s.adminMiddleware)
	admin.HandleFunc("/invites", s.handleCreateInvite).Methods("POST")
	admin.HandleFunc("/invites", s.handleListInvites).Methods("GET")
	admin.HandleFunc("/invites/expired", s.handlePurgeInvites).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Admin-Key"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(shutdownCtx, "shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
