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
	"gymapi/internal/services"
)

const classListCacheKey = "groupclasses:list"

type GroupClassHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewGroupClassHandler(db *gorm.DB, cache *services.RedisCache) *GroupClassHandler {
	return &GroupClassHandler{db: db, cache: cache}
}

// ListGroupClasses returns all non-deleted classes, cached briefly.
func (h *GroupClassHandler) ListGroupClasses(c echo.Context) error {
	classes, err := services.GetOrSet(h.cache, c.Request().Context(), classListCacheKey, time.Minute,
		func() ([]models.GroupClass, error) {
			var classes []models.GroupClass
			err := h.db.Scopes(models.Active).Find(&classes).Error
			return classes, err
		})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// GetGroupClass returns one class.
func (h *GroupClassHandler) GetGroupClass(c echo.Context) error {
	var class models.GroupClass
	err := h.db.Scopes(models.Active).First(&class, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "group class not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, class)
}

// CreateGroupClass schedules a class.
func (h *GroupClassHandler) CreateGroupClass(c echo.Context) error {
	var req CreateGroupClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !models.ValidGroupClassType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class type")
	}
	if req.MaxCapacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "max capacity must be positive")
	}
	if req.InstructorID != nil {
		if err := h.instructorExists(*req.InstructorID); err != nil {
			return err
		}
	}

	class := models.GroupClass{
		Type:         req.Type,
		Name:         req.Name,
		Description:  req.Description,
		StartTime:    req.StartTime,
		MaxCapacity:  req.MaxCapacity,
		InstructorID: req.InstructorID,
		GymID:        req.GymID,
	}
	if err := h.db.Create(&class).Error; err != nil {
		return err
	}

	h.invalidateList(c)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/groupclass/%d", class.ID))
	return c.JSON(http.StatusCreated, class)
}

// UpdateGroupClass replaces a class's mutable fields. CurrentEnrollment
// is not among them; only enroll/unenroll move it.
func (h *GroupClassHandler) UpdateGroupClass(c echo.Context) error {
	var req UpdateGroupClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}
	if !models.ValidGroupClassType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class type")
	}
	if req.InstructorID != nil {
		if err := h.instructorExists(*req.InstructorID); err != nil {
			return err
		}
	}

	var class models.GroupClass
	err := h.db.Scopes(models.Active).First(&class, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "group class not found")
		}
		return err
	}

	class.Type = req.Type
	class.Name = req.Name
	class.Description = req.Description
	class.StartTime = req.StartTime
	class.MaxCapacity = req.MaxCapacity
	class.InstructorID = req.InstructorID
	// The counter column belongs to enroll/unenroll; writing it here
	// would clobber enrollments that landed after the First above.
	if err := h.db.Omit("current_enrollment").Save(&class).Error; err != nil {
		return err
	}

	h.invalidateList(c)
	return c.NoContent(http.StatusNoContent)
}

// Enroll adds the calling member to the roster and bumps the enrollment
// counter in the same transaction. The counter update is conditional on
// remaining capacity, so concurrent enrollments cannot overbook.
func (h *GroupClassHandler) Enroll(c echo.Context) error {
	classID := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var class models.GroupClass
		err := tx.Scopes(models.Active).First(&class, classID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "group class not found")
			}
			return err
		}

		member, err := callerMember(tx, c)
		if err != nil {
			return err
		}

		var enrolled int64
		err = tx.Table("group_class_members").
			Where("group_class_id = ? AND member_id = ?", class.ID, member.ID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if enrolled > 0 {
			return echo.NewHTTPError(http.StatusConflict, "member is already enrolled in this class")
		}

		res := tx.Model(&models.GroupClass{}).
			Where("id = ? AND current_enrollment < max_capacity", class.ID).
			Update("current_enrollment", gorm.Expr("current_enrollment + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return echo.NewHTTPError(http.StatusConflict, "class is full")
		}

		return tx.Model(&class).Association("Members").Append(member)
	})
	if err != nil {
		return err
	}

	h.invalidateList(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "enrolled successfully"})
}

// Unenroll removes the calling member from the roster and decrements
// the counter in the same transaction.
func (h *GroupClassHandler) Unenroll(c echo.Context) error {
	classID := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var class models.GroupClass
		err := tx.Scopes(models.Active).First(&class, classID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "group class not found")
			}
			return err
		}

		member, err := callerMember(tx, c)
		if err != nil {
			return err
		}

		var enrolled int64
		err = tx.Table("group_class_members").
			Where("group_class_id = ? AND member_id = ?", class.ID, member.ID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if enrolled == 0 {
			return echo.NewHTTPError(http.StatusConflict, "member is not enrolled in this class")
		}

		if err := tx.Model(&class).Association("Members").Delete(member); err != nil {
			return err
		}

		return tx.Model(&models.GroupClass{}).
			Where("id = ? AND current_enrollment > 0", class.ID).
			Update("current_enrollment", gorm.Expr("current_enrollment - 1")).Error
	})
	if err != nil {
		return err
	}

	h.invalidateList(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "unenrolled successfully"})
}

// DeleteGroupClass soft-deletes a class.
func (h *GroupClassHandler) DeleteGroupClass(c echo.Context) error {
	var class models.GroupClass
	err := h.db.Scopes(models.Active).First(&class, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "group class not found")
		}
		return err
	}

	class.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&class).Error; err != nil {
		return err
	}

	h.invalidateList(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *GroupClassHandler) instructorExists(id uint) error {
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

func (h *GroupClassHandler) invalidateList(c echo.Context) {
	_ = h.cache.Delete(c.Request().Context(), classListCacheKey)
}

// callerMember resolves the authenticated user to its member row.
func callerMember(db *gorm.DB, c echo.Context) (*models.Member, error) {
	var member models.Member
	err := db.Scopes(models.OwnerActive("members")).
		First(&member, "members.user_id = ?", currentUserID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "caller has no member profile")
		}
		return nil, err
	}
	return &member, nil
}
