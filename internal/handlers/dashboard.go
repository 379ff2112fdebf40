package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymapi/internal/models"
)

// DashboardHandler aggregates the member-facing dashboard server-side:
// membership progress, today's classes and sessions, summary counts.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Dashboard returns the caller's aggregated view.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	now := time.Now().UTC()
	resp := DashboardResponse{
		TodayClasses:  []models.GroupClass{},
		TodaySessions: []models.PtSession{},
	}

	var us models.UserSubscription
	err := h.db.Scopes(models.Active).
		Preload("Subscription").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at desc").
		First(&us).Error
	switch {
	case err == nil:
		resp.Membership = summarizeMembership(us, now)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No membership yet; the rest of the dashboard still renders.
	default:
		return err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	err = h.db.Scopes(models.Active).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time").
		Find(&resp.TodayClasses).Error
	if err != nil {
		return err
	}

	if err := h.db.Model(&models.GroupClass{}).Scopes(models.Active).Count(&resp.ClassCount).Error; err != nil {
		return err
	}

	var member models.Member
	err = h.db.Scopes(models.OwnerActive("members")).
		First(&member, "members.user_id = ?", currentUserID(c)).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		err = h.db.Scopes(models.Active).
			Where("member_id = ? AND session_time >= ? AND session_time < ?", member.ID, dayStart, dayEnd).
			Order("session_time").
			Find(&resp.TodaySessions).Error
		if err != nil {
			return err
		}

		err = h.db.Model(&models.PtSession{}).Scopes(models.Active).
			Where("member_id = ?", member.ID).
			Count(&resp.SessionCount).Error
		if err != nil {
			return err
		}

		err = h.db.Model(&models.PtSession{}).Scopes(models.Active).
			Where("member_id = ? AND session_time >= ? AND status = ?", member.ID, now, models.SessionScheduled).
			Count(&resp.UpcomingCount).Error
		if err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// summarizeMembership derives days-remaining and percent-elapsed from
// the subscription period. Percent is clamped to [0, 100].
func summarizeMembership(us models.UserSubscription, now time.Time) *MembershipSummary {
	summary := &MembershipSummary{UserSubscription: us}

	total := us.EndDate.Sub(us.StartDate)
	if total > 0 {
		elapsed := now.Sub(us.StartDate)
		percent := float64(elapsed) / float64(total) * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		summary.PercentElapsed = percent
	}

	if remaining := us.EndDate.Sub(now); remaining > 0 {
		summary.DaysRemaining = int(remaining.Hours() / 24)
	}

	return summary
}
