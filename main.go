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

	"blog-api/config"
	"blog-api/handlers"
	"blog-api/helper"
	"blog-api/logger"
	"blog-api/mailer"
	"blog-api/middleware"
	"blog-api/repositories"
	"blog-api/routes"
	"blog-api/services"
	"blog-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)
	for _, w := range cfg.Warnings {
		log.Warn("config fallback", "detail", w)
	}
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.InitDB(cfg.DB, log)
	if err != nil {
		log.Error("database init failed", "error", err.Error())
		os.Exit(1)
	}

	store, err := newStorage(cfg.Storage)
	if err != nil {
		log.Error("storage init failed", "error", err.Error())
		os.Exit(1)
	}

	mail := newMailer(cfg.SMTP, log)
	limiter := newLimiter(cfg, log)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	fileRepo := repositories.NewFileRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, tokenService, mail)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, tagRepo, categoryRepo, fileRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	tagService := services.NewTagService(tagRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	fileService := services.NewFileService(fileRepo, store, cfg.Storage.MaxUploadSize)

	// Initialize handlers
	h := helper.NewHTTPHelper()
	router := routes.SetupRouter(routes.Dependencies{
		DB:           db,
		Log:          log,
		Helper:       h,
		Auth:         handlers.NewAuthHandler(authService, h, cfg.JWT),
		User:         handlers.NewUserHandler(userService, h),
		Post:         handlers.NewPostHandler(postService, h),
		Comment:      handlers.NewCommentHandler(commentService, h),
		Tag:          handlers.NewTagHandler(tagService, h),
		Category:     handlers.NewCategoryHandler(categoryService, h),
		File:         handlers.NewFileHandler(fileService, h),
		AuthSvc:      authService,
		CookieName:   cfg.JWT.CookieName,
		Limiter:      limiter,
		RouteTimeout: cfg.RouteTimeout,
		CORSOrigins:  cfg.CORSOrigins,

		TrustedProxies: cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err.Error())
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server exited")
}

func newStorage(cfg config.StorageConfig) (storage.ObjectStorage, error) {
	if cfg.Driver == "cloudinary" {
		return storage.NewCloudinary(cfg.CloudinaryURL)
	}
	return storage.NewLocal(cfg.Dir)
}

func newMailer(cfg config.SMTPConfig, log *slog.Logger) mailer.Sender {
	if !cfg.Enabled() {
		return mailer.NewLogSender(log)
	}
	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
	if err != nil {
		log.Warn("smtp disabled", "error", err.Error())
		return mailer.NewLogSender(log)
	}
	return sender
}

func newLimiter(cfg *config.Config, log *slog.Logger) middleware.Limiter {
	if cfg.ThrottleLimit <= 0 {
		return nil
	}
	if cfg.RedisAddr == "" {
		return middleware.NewIPRateLimiter(cfg.ThrottleLimit, cfg.ThrottleTTL)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unavailable, throttling in memory", "addr", cfg.RedisAddr, "error", err.Error())
		return middleware.NewIPRateLimiter(cfg.ThrottleLimit, cfg.ThrottleTTL)
	}
	return middleware.NewRedisRateLimiter(rdb, cfg.ThrottleLimit, cfg.ThrottleTTL)
}
