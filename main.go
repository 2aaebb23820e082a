package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"questku_backend/internals/configs"
	database "questku_backend/internals/databases"
	"questku_backend/internals/features/analytics"
	achievementService "questku_backend/internals/features/gamification/achievements/service"
	rewardService "questku_backend/internals/features/gamification/rewards/service"
	notificationService "questku_backend/internals/features/home/notifications/service"
	questService "questku_backend/internals/features/quests/quest/service"
	questScheduler "questku_backend/internals/features/quests/scheduler"
	statsService "questku_backend/internals/features/stats/service"
	authScheduler "questku_backend/internals/features/users/auth/scheduler"
	authService "questku_backend/internals/features/users/auth/service"
	userService "questku_backend/internals/features/users/user/service"
	"questku_backend/internals/helpers/cache"
	"questku_backend/internals/helpers/dbtime"
	middlewares "questku_backend/internals/middlewares"
	routes "questku_backend/internals/route"
	"questku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	dbtime.SetAppLocation(configs.Location())

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	middlewares.SetupMiddlewares(app)

	// HTTP timeout guard (selaras dengan statement_timeout di DB)
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	// 🔌 DB connect + pool + migrate + warm-up
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}
	seeds.RunAllSeeds(database.DB, os.Getenv("SEED_USERS_FILE"))
	database.WarmUpQueries()

	// 🧩 services
	db := database.DB
	store := cache.New(configs.CacheSize, 5*time.Minute)
	recorder := analytics.New(configs.AnalyticsBaseURL, configs.AnalyticsRPS)

	notes := notificationService.NewNotificationService(db)
	achievements := achievementService.NewAchievementService(db, notes, store)
	quests := questService.NewQuestService(db, notes, achievements, recorder, store)
	rewards := rewardService.NewRewardService(db, store)
	stats := statsService.NewStatsService(db, quests, achievements, rewards, notes, recorder, store)
	tokens := authService.NewTokenService(configs.JWTSecret, configs.JWTTTL)
	auth := authService.NewAuthService(db, tokens)
	users := userService.NewUserService(db, recorder, store)

	// ⏱ scheduler setelah DB siap
	var sched *questScheduler.Scheduler
	if configs.SchedulerEnabled {
		specs, err := configs.LoadSchedulerSpecs(configs.SchedulerConfig)
		if err != nil {
			log.Fatalf("❌ scheduler config: %v", err)
		}
		sched = questScheduler.New(quests, notes, stats, specs, configs.Location())
		sched.AddJob("token-cleanup", specs.TokenCleanup, authScheduler.BlacklistCleanupJob(auth, 4*time.Minute))
		if err := sched.Start(); err != nil {
			log.Fatalf("❌ scheduler start: %v", err)
		}
	} else {
		log.Println("ℹ️ SCHEDULER_ENABLED=false, background jobs disabled")
	}

	// ✅ Routes
	routes.SetupRoutes(app, routes.Services{
		DB:           db,
		Auth:         auth,
		Users:        users,
		Quests:       quests,
		Achievements: achievements,
		Rewards:      rewards,
		Stats:        stats,
		Scheduler:    sched,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: scheduler dulu, lalu HTTP, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-ctx.Done():
			log.Println("[WARN] scheduler jobs still running at shutdown")
		}
	}
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
