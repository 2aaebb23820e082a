package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"questku_backend/internals/features/progress/leveling"
	"questku_backend/internals/features/progress/points/service"
	helper "questku_backend/internals/helpers"
)

type ExperienceLogController struct {
	DB *gorm.DB
}

func NewExperienceLogController(db *gorm.DB) *ExperienceLogController {
	return &ExperienceLogController{DB: db}
}

// 🟢 GET /api/u/xp-logs?page=1&per_page=20
// Riwayat perolehan XP milik user (check-in quest, dsb), terbaru dulu.
func (ctrl *ExperienceLogController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	logs, total, err := service.ListLogs(ctrl.DB.WithContext(c.UserContext()), userID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(logs))
	return helper.JsonList(c, "Experience logs fetched", logs, &pg)
}

// 🟢 GET /api/u/xp-logs/levels?xp=250
// Tabel bantu di UI: progres ke level berikutnya untuk nilai XP tertentu.
func (ctrl *ExperienceLogController) LevelPreview(c *fiber.Ctx) error {
	xp := int64(c.QueryInt("xp", 0))
	if xp < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "xp must not be negative")
	}
	return helper.JsonOK(c, "ok", leveling.NextLevelProgress(xp))
}
