package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/radio-cms-api/api/swagger"
	"github.com/noah-isme/radio-cms-api/internal/handler"
	"github.com/noah-isme/radio-cms-api/internal/repository"
	"github.com/noah-isme/radio-cms-api/internal/seed"
	"github.com/noah-isme/radio-cms-api/internal/service"
	"github.com/noah-isme/radio-cms-api/internal/worker"
	"github.com/noah-isme/radio-cms-api/pkg/cache"
	"github.com/noah-isme/radio-cms-api/pkg/config"
	"github.com/noah-isme/radio-cms-api/pkg/database"
	"github.com/noah-isme/radio-cms-api/pkg/logger"
	"github.com/noah-isme/radio-cms-api/pkg/storage"
)

// @title Radio CMS API
// @version 1.0.0
// @description Schedule, on-air status and site content for a holiday radio station.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisRepo *repository.CacheRepository
	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable; serving without cache", zap.Error(err))
		} else {
			redisRepo = repository.NewCacheRepository(client, cfg.Cache.KeyPrefix, logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
		}
	}

	mediaPrefix := cfg.APIPrefix + "/media"
	store, err := storage.New(cfg.Storage, mediaPrefix)
	if err != nil {
		logr.Fatal("failed to init media storage", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := buildApp(cfg, logr, db, cacheRepo, store)
	app.publish.Start(ctx)
	defer app.publish.Stop()

	if cfg.Seed.Enabled {
		runSeed(ctx, cfg.Seed.File, app, logr)
	}

	if cfg.OnAir.WatcherEnabled {
		watcher := worker.NewOnAirWatcher(app.onAir, app.metrics, logr, cfg.OnAir.PollSpec)
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	checks := map[string]func() error{
		"database": func() error { return pingDB(db) },
	}
	if redisRepo != nil {
		checks["redis"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisRepo.Ping(pingCtx)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, logr, app, checks),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// app holds the services the router and the background workers share.
type app struct {
	metrics   *service.MetricsService
	auth      *service.AuthService
	users     *service.UserService
	programs  *service.ProgramService
	onAir     *service.OnAirService
	djs       *service.DJService
	songs     *service.SongRequestService
	nowPlay   *service.NowPlayingService
	theme     *service.ThemeService
	station   *service.StationService
	weather   *service.WeatherService
	countdown *service.CountdownService
	publish   *service.PublishService
	store     storage.Provider
}

func buildApp(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, cacheRepo service.CacheRepository, store storage.Provider) *app {
	validate := service.NewValidator()
	clock := service.RealClock{}
	loc := cfg.Station.Location()

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	programRepo := repository.NewProgramRepository(db)
	djRepo := repository.NewDJRepository(db)
	songRepo := repository.NewSongRequestRepository(db)

	programs := service.NewProgramService(programRepo, cacheSvc, metrics, validate, logr, loc)

	return &app{
		metrics: metrics,
		auth: service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
			AccessTokenSecret:  cfg.JWT.Secret,
			AccessTokenExpiry:  cfg.JWT.Expiration,
			RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
			Issuer:             cfg.JWT.Issuer,
		}),
		users:    service.NewUserService(userRepo, validate, logr),
		programs: programs,
		onAir: service.NewOnAirService(programs, settingsRepo, cacheSvc, clock, validate, logr, service.OnAirConfig{
			Location:        loc,
			IdleMessage:     cfg.Station.IdleMessage,
			UpcomingDefault: cfg.OnAir.UpcomingDefault,
			UpcomingMax:     cfg.OnAir.UpcomingMax,
		}),
		djs: service.NewDJService(djRepo, store, cacheSvc, validate, logr, service.DJConfig{
			MaxPhotoBytes: cfg.Storage.MaxPhotoBytes,
			AllowedMIMEs:  cfg.Storage.AllowedMIMEs,
		}),
		songs:     service.NewSongRequestService(songRepo, metrics, validate, logr),
		nowPlay:   service.NewNowPlayingService(settingsRepo, cacheSvc, clock, validate, logr),
		theme:     service.NewThemeService(settingsRepo, cacheSvc, validate, logr),
		station:   service.NewStationService(settingsRepo, cacheSvc, validate, logr, cfg.Station.Name),
		weather:   service.NewWeatherService(settingsRepo, cacheSvc, clock, validate, logr),
		countdown: service.NewCountdownService(clock, loc),
		publish: service.NewPublishService(settingsRepo, cacheSvc, metrics, clock, validate, logr, service.PublishConfig{
			Workers:    cfg.Publish.Workers,
			MaxRetries: cfg.Publish.MaxRetries,
			RetryDelay: cfg.Publish.RetryDelay,
			JobTimeout: cfg.Publish.JobTimeout,
		}),
		store: store,
	}
}

func runSeed(ctx context.Context, path string, a *app, logr *zap.Logger) {
	file, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logr.Info("no seed file found", zap.String("path", path))
			return
		}
		logr.Error("failed to read seed file", zap.String("path", path), zap.Error(err))
		return
	}
	if _, err := seed.NewSeeder(a.programs, a.djs, a.station, logr).Apply(ctx, file); err != nil {
		logr.Error("seed failed", zap.Error(err))
	}
}

func pingDB(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func newRouter(cfg *config.Config, logr *zap.Logger, a *app, checks map[string]func() error) *gin.Engine {
	r := gin.New()
	registerRoutes(r, cfg, logr, a, checks)
	return r
}

// mediaHandler is only mounted for the local provider; remote providers sign their own links.
func mediaHandler(store storage.Provider) *handler.MediaHandler {
	local, ok := store.(*storage.LocalStorage)
	if !ok {
		return nil
	}
	return handler.NewMediaHandler(local)
}
