package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/learntrail/internal/config"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/remote"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/service"
	"go.uber.org/zap"
)

// App holds the configuration and services used by CLI commands.
type App struct {
	Config config.Config
	Logger *zap.Logger

	Users   service.UserService
	Courses service.CourseService
	Trails  service.TrailService
	Certs   service.CertificationService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Wire builds the services from the config file at path. Tests leave it
	// nil and fill the services in directly.
	Wire func(app *App, configPath string) error

	closers []func() error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases everything Wire opened. Safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// currentUser resolves the configured learner. Without a configured user a
// store holding exactly one user picks that one.
func (a *App) currentUser(ctx context.Context) (*domain.User, error) {
	name := strings.TrimSpace(a.Config.User)
	if name != "" {
		u, err := a.Users.GetByUsername(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %q not found; add it with `learntrail user add %s`", name, name)
		}
		return u, err
	}

	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, fmt.Errorf("no users yet; add one with `learntrail user add <name>`")
	case 1:
		return users[0], nil
	default:
		return nil, fmt.Errorf("%d users exist; pick one with --user or the `user` config key", len(users))
	}
}

// remoteUserID returns the learner id sent to the API. The `user` key holds
// a numeric id in remote mode; anything else leaves identity to the token.
func (a *App) remoteUserID() int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(a.Config.User), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func (a *App) remoteClient() *remote.Client {
	cfg := a.Config.RemoteConfig(a.remoteUserID())
	cfg.Logger = a.logger().Named("remote")
	return remote.NewClient(cfg)
}

// source returns the snapshot source for the current learner: the remote
// API when api.url is set, the local store otherwise.
func (a *App) source(ctx context.Context) (service.SnapshotSource, error) {
	if a.Config.Remote() {
		return &service.RemoteSource{Client: a.remoteClient()}, nil
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &service.LocalSource{UserID: u.ID, Courses: a.Courses, Trails: a.Trails, Certs: a.Certs}, nil
}

func (a *App) progressService(ctx context.Context) (service.ProgressService, error) {
	src, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewProgressService(src, a.Config.Route.Base), nil
}

// requireLocal rejects commands that only work against the local store.
func (a *App) requireLocal(what string) error {
	if a.Config.Remote() {
		return fmt.Errorf("%s works on the local store only; unset api.url to use it", what)
	}
	return nil
}
