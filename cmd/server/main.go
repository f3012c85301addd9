package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"challenge-monitor/internal/config"
	"challenge-monitor/internal/handler"
	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/middleware"
	"challenge-monitor/internal/service"
	"challenge-monitor/internal/store"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := store.AutoMigrate(db); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	st := store.NewGormStore(db)
	lifecycle := service.NewLifecycle(st)
	autoSkip := service.NewAutoSkip(st, lifecycle)
	authSvc := service.NewAuth(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := authSvc.EnsureDefaultUser(ctx, cfg.Auth.Username, cfg.Auth.Password); err != nil {
		slog.Error("seed default user failed", "err", err)
		os.Exit(1)
	}

	if cfg.AutoSkip.Enabled {
		go service.NewScheduler(autoSkip, cfg.AutoSkip.CutoffHour).Run(ctx)
		slog.Info("autoskip scheduler started", "cutoff_hour", cfg.AutoSkip.CutoffHour)
	}

	secret := []byte(cfg.Auth.Secret)
	challengeH := handler.NewChallengeHandler(lifecycle)
	autoSkipH := handler.NewAutoSkipHandler(autoSkip, cfg.AutoSkip.CutoffHour)
	authH := handler.NewAuthHandler(authSvc, secret)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth(secret))
	api.POST("/challenges", challengeH.Create)
	api.GET("/challenges", challengeH.List)
	api.GET("/challenges/completed", challengeH.Completed)
	api.GET("/challenges/:id", challengeH.Get)
	api.PUT("/challenges/:id", challengeH.Update)
	api.DELETE("/challenges/:id", challengeH.Delete)
	api.POST("/challenges/:id/logs", challengeH.LogDay)
	api.GET("/challenges/:id/logs", challengeH.Logs)
	api.GET("/challenges/:id/status", challengeH.Status)
	api.GET("/challenges/:id/streaks", challengeH.Streaks)
	api.GET("/streaks", challengeH.StreakBoard)
	api.GET("/days/:date/logs", challengeH.DayLogs)
	api.GET("/days/:date/challenges", challengeH.DayChallenges)
	api.POST("/autoskip", autoSkipH.Run)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
