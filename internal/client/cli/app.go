package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/streakkeeper/internal/client/config"
	"github.com/dmitrijs2005/streakkeeper/internal/client/services"
	"github.com/dmitrijs2005/streakkeeper/internal/client/storage"
)

// App is the interactive client. The session field is the only place
// login state lives; every service call receives it explicitly.
type App struct {
	config        *config.Config
	store         *storage.Store
	authService   services.AuthService
	taskService   services.TaskService
	inviteService services.InviteService
	session       *services.Session
	reader        *bufio.Reader
	out           *os.File
}

// NewApp opens the local database and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	return &App{
		config:        c,
		store:         store,
		authService:   services.NewAuthService(store.DB, store.Users, store.Invites),
		taskService:   services.NewTaskService(store.DB, store.Tasks, store.Users),
		inviteService: services.NewInviteService(store.Invites),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.Username)
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()
	log.Println("Welcome to Streakkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
