package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymapi/internal/models"
)

type PtSessionHandler struct {
	db *gorm.DB
}

func NewPtSessionHandler(db *gorm.DB) *PtSessionHandler {
	return &PtSessionHandler{db: db}
}

// ListPtSessions returns all non-deleted sessions.
func (h *PtSessionHandler) ListPtSessions(c echo.Context) error {
	var sessions []models.PtSession
	if err := h.db.Scopes(models.Active).Find(&sessions).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// GetPtSession returns one session.
func (h *PtSessionHandler) GetPtSession(c echo.Context) error {
	var session models.PtSession
	err := h.db.Scopes(models.Active).First(&session, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// CreatePtSession schedules a session between an instructor and a
// member.
func (h *PtSessionHandler) CreatePtSession(c echo.Context) error {
	var req CreatePtSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.instructorExists(req.InstructorID); err != nil {
		return err
	}
	if err := h.memberExists(req.MemberID); err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = models.SessionScheduled
	}
	if !models.ValidSessionStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session status")
	}

	session := models.PtSession{
		InstructorID: req.InstructorID,
		MemberID:     req.MemberID,
		Price:        req.Price,
		SessionTime:  req.SessionTime,
		Notes:        req.Notes,
		Status:       status,
	}
	if err := h.db.Create(&session).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/ptsession/%d", session.ID))
	return c.JSON(http.StatusCreated, session)
}

// UpdatePtSession replaces a session's mutable fields.
func (h *PtSessionHandler) UpdatePtSession(c echo.Context) error {
	var req UpdatePtSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}
	if !models.ValidSessionStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session status")
	}

	var session models.PtSession
	err := h.db.Scopes(models.Active).First(&session, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return err
	}

	session.Price = req.Price
	session.SessionTime = req.SessionTime
	session.Notes = req.Notes
	session.Status = req.Status
	if err := h.db.Save(&session).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BookSession creates a Scheduled session for the calling member. No
// overlap check is made against the instructor's existing bookings.
func (h *PtSessionHandler) BookSession(c echo.Context) error {
	var req BookSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var member models.Member
	err := h.db.Scopes(models.OwnerActive("members")).
		First(&member, "members.user_id = ?", currentUserID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "caller has no member profile")
		}
		return err
	}

	if err := h.instructorExists(req.InstructorID); err != nil {
		return err
	}

	session := models.PtSession{
		InstructorID: req.InstructorID,
		MemberID:     member.ID,
		Price:        req.Price,
		SessionTime:  req.SessionTime,
		Notes:        req.Notes,
		Status:       models.SessionScheduled,
	}
	if err := h.db.Create(&session).Error; err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "session booked successfully"})
}

// DeletePtSession soft-deletes a session.
func (h *PtSessionHandler) DeletePtSession(c echo.Context) error {
	var session models.PtSession
	err := h.db.Scopes(models.Active).First(&session, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return err
	}

	session.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&session).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PtSessionHandler) instructorExists(id uint) error {
	var instructor models.Instructor
	err := h.db.Scopes(models.OwnerActive("instructors")).
		First(&instructor, "instructors.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "instructor not found")
		}
		return err
	}
	return nil
}

func (h *PtSessionHandler) memberExists(id uint) error {
	var member models.Member
	err := h.db.Scopes(models.OwnerActive("members")).
		First(&member, "members.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "member not found")
		}
		return err
	}
	return nil
}
