package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymapi/internal/models"
)

type InstructorHandler struct {
	db *gorm.DB
}

func NewInstructorHandler(db *gorm.DB) *InstructorHandler {
	return &InstructorHandler{db: db}
}

// ListInstructors returns all instructors whose user is not deleted.
// Admin only.
func (h *InstructorHandler) ListInstructors(c echo.Context) error {
	var instructors []models.Instructor
	err := h.db.Preload("User").
		Scopes(models.OwnerActive("instructors")).
		Find(&instructors).Error
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructors)
}

// GetInstructor returns one instructor with its user data.
func (h *InstructorHandler) GetInstructor(c echo.Context) error {
	var instructor models.Instructor
	err := h.db.Preload("User").
		Scopes(models.OwnerActive("instructors")).
		First(&instructor, "instructors.id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, instructor)
}

// CreateInstructor promotes an existing user into an instructor row.
// Admin only.
func (h *InstructorHandler) CreateInstructor(c echo.Context) error {
	var req CreateInstructorRequest
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

	var existing models.Instructor
	err = h.db.Where("user_id = ?", req.UserID).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user is already an instructor")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	instructor := models.Instructor{UserID: req.UserID, GymID: req.GymID}
	if err := h.db.Create(&instructor).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/instructor/%d", instructor.ID))
	return c.JSON(http.StatusCreated, instructor)
}

// UpdateInstructor touches the row. Instructors carry no mutable fields
// of their own; membership changes go through the member endpoints.
func (h *InstructorHandler) UpdateInstructor(c echo.Context) error {
	var instructor models.Instructor
	err := h.db.Scopes(models.OwnerActive("instructors")).
		First(&instructor, "instructors.id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		}
		return err
	}

	instructor.UpdatedAt = time.Now().UTC()
	if err := h.db.Save(&instructor).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteInstructor soft-deletes the underlying user; the instructor row
// survives but drops out of every listing. Admin only.
func (h *InstructorHandler) DeleteInstructor(c echo.Context) error {
	var instructor models.Instructor
	err := h.db.Preload("User").
		Scopes(models.OwnerActive("instructors")).
		First(&instructor, "instructors.id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		}
		return err
	}

	instructor.User.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&instructor.User).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
