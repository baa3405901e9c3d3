package main

import (
	"context"
	"fmt"

	"fostercare/cmd/internal/backend/memory"
	"fostercare/cmd/internal/config"
	"fostercare/cmd/internal/domain/entity"
	"fostercare/cmd/internal/domain/sqlite"
	"fostercare/cmd/internal/domain/sqlite/repository"
	"fostercare/cmd/internal/guard"
	"fostercare/cmd/internal/infrastructure/aws/cognito"
	"fostercare/cmd/internal/infrastructure/aws/storage"
	"fostercare/cmd/internal/media"
	"fostercare/cmd/internal/routes"
	"fostercare/cmd/internal/service/jobs"
	"fostercare/cmd/internal/utils/uid"
	"fostercare/cmd/internal/utils/validators"
	"fostercare/cmd/internal/web"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type server struct {
	echo     *echo.Echo
	sweepers []*jobs.Sweeper
}

func newServer(ctx context.Context, cfg *config.AppConfig) (*server, error) {
	uid.Init(cfg.MachineID)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	deps := &routes.Deps{
		Children:      repository.NewRecordRepository[*entity.Child](db, uid.NewID),
		Families:      repository.NewRecordRepository[*entity.Family](db, uid.NewID),
		Staff:         repository.NewRecordRepository[*entity.Staff](db, uid.NewID),
		Notes:         repository.NewRecordRepository[*entity.Note](db, uid.NewID),
		Validate:      validators.New(),
		Guard:         guard.New(guard.DefaultTTL),
		SecureCookies: cfg.SecureCookies,
	}
	sweepers := []*jobs.Sweeper{jobs.NewSweeper("form token", deps.Guard, jobs.SweepInterval)}

	switch cfg.Driver {
	case config.DriverAWS:
		awsCfg, err := cfg.AWS(ctx)
		if err != nil {
			return nil, err
		}

		auth, err := cognito.NewFromConfig(ctx, awsCfg, cfg.CognitoPoolID, cfg.CognitoClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to init cognito: %w", err)
		}
		deps.Auth = auth
		deps.Files = storage.NewFromConfig(awsCfg, cfg.S3Bucket, cfg.PublicBaseURL)
	default:
		files := memory.NewFiles(cfg.PublicBaseURL)
		auth := memory.NewAuth(cfg.SessionSecret, cfg.SessionTTL)
		deps.Auth = auth
		deps.Files = files
		deps.Media = files
		sweepers = append(sweepers, jobs.NewSweeper("revoked session", auth, jobs.SweepInterval))
		log.Warnf("using the in-memory auth and file store, data is lost on restart")
	}
	deps.Photos = media.NewPhotoStore(deps.Files)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Logger.SetLevel(log.Level())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CorsOrigins}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	routes.Register(e, deps)
	return &server{echo: e, sweepers: sweepers}, nil
}
