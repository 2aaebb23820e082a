package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"questku_backend/internals/constants"
	achievementRoute "questku_backend/internals/features/gamification/achievements/route"
	achievementService "questku_backend/internals/features/gamification/achievements/service"
	rewardRoute "questku_backend/internals/features/gamification/rewards/route"
	rewardService "questku_backend/internals/features/gamification/rewards/service"
	notificationRoute "questku_backend/internals/features/home/notifications/route"
	pointRoute "questku_backend/internals/features/progress/points/route"
	questRoute "questku_backend/internals/features/quests/quest/route"
	questService "questku_backend/internals/features/quests/quest/service"
	"questku_backend/internals/features/quests/scheduler"
	statsRoute "questku_backend/internals/features/stats/route"
	statsService "questku_backend/internals/features/stats/service"
	authRoute "questku_backend/internals/features/users/auth/route"
	authService "questku_backend/internals/features/users/auth/service"
	userRoute "questku_backend/internals/features/users/user/routes"
	userService "questku_backend/internals/features/users/user/service"
	authMiddleware "questku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services dirakit di main lalu dibagikan ke semua group route.
type Services struct {
	DB           *gorm.DB
	Auth         *authService.AuthService
	Users        *userService.UserService
	Quests       *questService.QuestService
	Achievements *achievementService.AchievementService
	Rewards      *rewardService.RewardService
	Stats        *statsService.StatsService
	Scheduler    *scheduler.Scheduler // boleh nil kalau scheduler dimatikan
}

func SetupRoutes(app *fiber.App, s Services) {
	startTime = time.Now()

	BaseRoutes(app, s.DB)

	// ===================== PUBLIC (AUTH) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, s.Auth)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(s.Auth))

	authRoute.AuthUserRoutes(user, s.Auth)
	userRoute.UserUserRoutes(user, s.Users)
	questRoute.QuestUserRoutes(user, s.Quests)
	achievementRoute.AchievementUserRoutes(user, s.Achievements)
	rewardRoute.RewardUserRoutes(user, s.Rewards)
	statsRoute.StatsUserRoutes(user, s.Stats)
	notificationRoute.NotificationUserRoutes(user, s.DB)
	pointRoute.ExperienceLogRoutes(user, s.DB)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(s.Auth),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("Admin"), constants.AdminOnly),
	)

	userRoute.UserAdminRoutes(admin, s.Users)
	questRoute.QuestAdminRoutes(admin, s.Quests)
	rewardRoute.RewardAdminRoutes(admin, s.Rewards)
	statsRoute.StatsAdminRoutes(admin, s.Stats)
	if s.Scheduler != nil {
		scheduler.SchedulerAdminRoutes(admin, s.Scheduler)
	}
}
