package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"questku_backend/internals/features/quests/quest/model"
	"questku_backend/internals/helpers/dbtime"
)

/* ===============================
   Request
=================================*/

type CreateQuestRequest struct {
	Title            string `json:"quest_title" validate:"required,min=3,max=200"`
	Description      string `json:"quest_description" validate:"max=1000"`
	Type             string `json:"quest_type" validate:"required,oneof=DAILY WEEKLY"`
	StartDate        string `json:"quest_start_date" validate:"required"`
	EndDate          string `json:"quest_end_date" validate:"required"`
	ExperienceReward int64  `json:"quest_experience_reward" validate:"required,gt=0"`
	CheckInGoal      int    `json:"quest_check_in_goal" validate:"required,gt=0"`
}

func (r *CreateQuestRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

// Dates mem-parse tanggal mulai & selesai ("YYYY-MM-DD").
func (r *CreateQuestRequest) Dates() (start, end time.Time, err error) {
	if start, err = dbtime.ParseDate(r.StartDate); err != nil {
		return
	}
	end, err = dbtime.ParseDate(r.EndDate)
	return
}

// CheckInRequest: date opsional, kosong = hari ini (zona aplikasi).
type CheckInRequest struct {
	Date string `json:"date"`
}

/* ===============================
   Response
=================================*/

type QuestResponse struct {
	ID                 uuid.UUID  `json:"quest_id"`
	UserID             uuid.UUID  `json:"quest_user_id"`
	Title              string     `json:"quest_title"`
	Description        string     `json:"quest_description"`
	Type               string     `json:"quest_type"`
	Status             string     `json:"quest_status"`
	StartDate          string     `json:"quest_start_date"`
	EndDate            string     `json:"quest_end_date"`
	ExperienceReward   int64      `json:"quest_experience_reward"`
	CheckInGoal        int        `json:"quest_check_in_goal"`
	ExperiencePerCheck int64      `json:"quest_experience_per_check_in"`
	CompletedAt        *time.Time `json:"quest_completed_at,omitempty"`
	ExpiredAt          *time.Time `json:"quest_expired_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	Progress *ProgressResponse `json:"progress,omitempty"`
}

type ProgressResponse struct {
	Percentage   int       `json:"percentage"`
	CheckInCount int       `json:"check_in_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

func ToQuestResponse(q *model.QuestModel, p *model.QuestProgressModel) QuestResponse {
	out := QuestResponse{
		ID:                 q.QuestID,
		UserID:             q.QuestUserID,
		Title:              q.QuestTitle,
		Description:        q.QuestDescription,
		Type:               string(q.QuestType),
		Status:             string(q.QuestStatus),
		StartDate:          dbtime.FormatDate(q.StartDate()),
		EndDate:            dbtime.FormatDate(q.EndDate()),
		ExperienceReward:   q.QuestExperienceReward,
		CheckInGoal:        q.QuestCheckInGoal,
		ExperiencePerCheck: q.XPPerCheckIn(),
		CompletedAt:        q.QuestCompletedAt,
		ExpiredAt:          q.QuestExpiredAt,
		CreatedAt:          q.CreatedAt,
	}
	if p != nil {
		out.Progress = &ProgressResponse{
			Percentage:   p.QuestProgressPercentage,
			CheckInCount: p.QuestProgressCheckInCount,
			LastUpdated:  p.QuestProgressLastUpdated,
		}
	}
	return out
}

func ToQuestResponseList(rows []model.QuestModel) []QuestResponse {
	out := make([]QuestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToQuestResponse(&rows[i], nil))
	}
	return out
}

type CheckInResponse struct {
	ID                uuid.UUID `json:"check_in_id"`
	QuestID           uuid.UUID `json:"check_in_quest_id"`
	Date              string    `json:"check_in_date"`
	PeriodKey         string    `json:"check_in_period_key"`
	ExperienceAwarded int64     `json:"check_in_experience_awarded"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToCheckInResponse(c *model.CheckInModel) CheckInResponse {
	return CheckInResponse{
		ID:                c.CheckInID,
		QuestID:           c.CheckInQuestID,
		Date:              dbtime.FormatDate(c.Date()),
		PeriodKey:         c.CheckInPeriodKey,
		ExperienceAwarded: c.CheckInExperienceAwarded,
		CreatedAt:         c.CreatedAt,
	}
}

func ToCheckInResponseList(rows []model.CheckInModel) []CheckInResponse {
	out := make([]CheckInResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToCheckInResponse(&rows[i]))
	}
	return out
}
