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

type MemberHandler struct {
	db *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

// ListMembers returns all members whose user is not deleted, with their
// instructor. Admin only.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	var members []models.Member
	err := h.db.Preload("User").
		Preload("Instructor").
		Preload("Instructor.User").
		Scopes(models.OwnerActive("members")).
		Find(&members).Error
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// GetMember returns one member with user and instructor data.
func (h *MemberHandler) GetMember(c echo.Context) error {
	var member models.Member
	err := h.db.Preload("User").
		Preload("Instructor").
		Preload("Instructor.User").
		Scopes(models.OwnerActive("members")).
		First(&member, "members.id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "member not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// CreateMember enrolls an existing user as a member. Admin only.
func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var user models.User
	err := h.db.Scopes(models.Active).First(&user, req.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	var existing models.Member
	err = h.db.Where("user_id = ?", req.UserID).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user is already a member")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if req.InstructorID != nil {
		if err := h.instructorExists(*req.InstructorID); err != nil {
			return err
		}
	}

	member := models.Member{
		UserID:       req.UserID,
		InstructorID: req.InstructorID,
		GymID:        req.GymID,
		IsActive:     true,
	}
	if err := h.db.Create(&member).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/member/%d", member.ID))
	return c.JSON(http.StatusCreated, member)
}

// UpdateMember replaces the member's instructor assignment and active
// flag.
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}

	var member models.Member
	err := h.db.Scopes(models.OwnerActive("members")).
		First(&member, "members.id = ?", req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "member not found")
		}
		return err
	}

	if req.InstructorID != nil {
		if err := h.instructorExists(*req.InstructorID); err != nil {
			return err
		}
	}

	member.InstructorID = req.InstructorID
	member.IsActive = req.IsActive
	if err := h.db.Save(&member).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteMember soft-deletes the underlying user; the member row
// survives but drops out of every listing. Admin only.
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	var member models.Member
	err := h.db.Preload("User").
		Scopes(models.OwnerActive("members")).
		First(&member, "members.id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "member not found")
		}
		return err
	}

	member.User.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&member.User).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MemberHandler) instructorExists(id uint) error {
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
