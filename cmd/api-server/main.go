package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"cinelog/database"
	"cinelog/internal/config"
	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/handler"
	"cinelog/internal/httpapi/middleware"
	"cinelog/internal/httpapi/repository"
	"cinelog/internal/httpapi/service"
	"cinelog/internal/httpapi/validation"
	"cinelog/internal/omdb"
	"cinelog/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("could not get database instance", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	var store session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			logger.Error("could not connect to Redis", "error", err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		logger.Warn("REDIS_ADDR not set, sessions are kept in-process and die with the server")
		store = session.NewMemoryStore(cfg.SessionTTL)
	}

	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo)
	reviewService := service.NewReviewService(reviewRepo)

	sessions := handler.NewSessionWriter(store, cfg.SessionTTL, cfg.CookieSecure)
	authHandler := handler.NewAuthHandler(authService, sessions)
	reviewHandler := handler.NewReviewHandler(reviewService)
	searchHandler := handler.NewSearchHandler(omdb.NewClient(cfg.OMDBAPIURL, cfg.OMDBAPIKey))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Resolve(store, int(cfg.SessionTTL.Seconds()), cfg.CookieSecure))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	searchHandler.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, dto.NewError(http.StatusNotFound, "Not Found",
				validation.FieldError{Field: "resource", Code: "NOT_FOUND",
					Message: fmt.Sprintf("Endpoint %s does not exist", path)}))
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
