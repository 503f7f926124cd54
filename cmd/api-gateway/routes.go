package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/handler"
	"github.com/noah-isme/radio-cms-api/internal/middleware"
	"github.com/noah-isme/radio-cms-api/pkg/config"
	"github.com/noah-isme/radio-cms-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/radio-cms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/radio-cms-api/pkg/middleware/requestid"
)

func registerRoutes(r *gin.Engine, cfg *config.Config, logr *zap.Logger, a *app, checks map[string]func() error) {
	api := cfg.APIPrefix

	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, api+"/on-air", "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(a.metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	scheduleHandler := handler.NewScheduleHandler(a.programs)
	onAirHandler := handler.NewOnAirHandler(a.onAir, 0)
	djHandler := handler.NewDJHandler(a.djs)
	songHandler := handler.NewSongRequestHandler(a.songs)
	contentHandler := handler.NewContentHandler(a.nowPlay, a.theme, a.station, a.weather, a.countdown)
	authHandler := handler.NewAuthHandler(a.auth)
	userHandler := handler.NewUserHandler(a.users)
	updateHandler := handler.NewUpdateHandler(a.publish)

	limiter := middleware.NewRateLimiter(
		cfg.RateLimit.SongRequestsPerMinute,
		cfg.RateLimit.Burst,
		cfg.RateLimit.BlockDuration,
		a.metrics,
		logr,
	)

	public := r.Group(api)
	{
		public.GET("/schedule", scheduleHandler.List)
		public.GET("/schedule/export", scheduleHandler.Export)
		public.GET("/schedule/:day", scheduleHandler.ForDay)

		public.GET("/on-air", onAirHandler.Status)
		public.GET("/on-air/upcoming", onAirHandler.Upcoming)
		public.GET("/on-air/override", onAirHandler.Override)

		public.GET("/djs", djHandler.List)
		public.GET("/djs/:id", djHandler.Get)

		public.POST("/song-requests", limiter.Handler("song-requests"), songHandler.Submit)

		public.GET("/now-playing", contentHandler.NowPlaying)
		public.GET("/theme", contentHandler.Theme)
		public.GET("/station", contentHandler.Station)
		public.GET("/weather", contentHandler.Weather)
		public.GET("/countdown", contentHandler.Countdown)

		if media := mediaHandler(a.store); media != nil {
			public.GET("/media/:token", media.Serve)
		}
	}

	auth := r.Group(api + "/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(a.auth), authHandler.Logout)
		auth.GET("/me", middleware.JWT(a.auth), authHandler.Me)
		auth.GET("/role", middleware.OptionalJWT(a.auth), authHandler.Role)
		auth.GET("/is-admin", middleware.OptionalJWT(a.auth), authHandler.Role)
	}

	users := r.Group(api+"/users", middleware.JWT(a.auth))
	{
		users.GET("/me/profile", userHandler.Profile)
		users.PUT("/me/profile", userHandler.SaveProfile)
	}

	admin := r.Group(api+"/admin", middleware.JWT(a.auth), middleware.RequireAdmin())
	{
		admin.POST("/programs", scheduleHandler.Add)
		admin.PUT("/programs", scheduleHandler.Update)
		admin.DELETE("/programs", scheduleHandler.Delete)
		admin.POST("/programs/legacy", scheduleHandler.ImportLegacy)

		admin.PUT("/on-air/override", onAirHandler.SetOverride)
		admin.DELETE("/on-air/override", onAirHandler.ClearOverride)

		admin.POST("/djs", djHandler.Create)
		admin.PUT("/djs/:id", djHandler.Update)
		admin.DELETE("/djs/:id", djHandler.Delete)

		admin.GET("/song-requests", songHandler.List)
		admin.DELETE("/song-requests", songHandler.Clear)

		admin.PUT("/now-playing", contentHandler.UpdateNowPlaying)
		admin.DELETE("/now-playing", contentHandler.ClearNowPlaying)
		admin.PUT("/theme", contentHandler.UpdateTheme)
		admin.PUT("/station", contentHandler.UpdateStation)
		admin.PUT("/weather", contentHandler.ReplaceWeather)

		admin.GET("/users", userHandler.List)
		admin.PUT("/users/role", userHandler.AssignRole)

		admin.POST("/updates", updateHandler.Run)
		admin.GET("/updates/last", updateHandler.Last)
		admin.GET("/metrics", metricsHandler.Snapshot)
	}
}
