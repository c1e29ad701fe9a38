package cli

import (
	"fmt"

	"github.com/alexanderramin/learntrail/internal/config"
	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/logger"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/service"
)

// Wire loads the config at path, opens the local store and builds every
// service. It is the production App.Wire.
func Wire(app *App, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	app.Config = cfg

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	app.Logger = log
	app.onClose(func() error {
		_ = log.Sync()
		return nil
	})

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	app.onClose(database.Close)

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewZapUseCaseObserver(log))
	}

	uow := db.NewSQLiteUnitOfWork(database)
	courseRepo := repository.NewSQLiteCourseRepo(database)

	app.Users = service.NewUserService(repository.NewSQLiteUserRepo(database))
	app.Courses = service.NewCourseService(courseRepo, uow, observers...)
	app.Trails = service.NewTrailService(repository.NewSQLiteTrailRepo(database), uow, observers...)
	app.Certs = service.NewCertificationService(repository.NewSQLiteCertificationRepo(database), courseRepo, uow, observers...)
	return nil
}
