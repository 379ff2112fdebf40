package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymapi/internal/models"
	"gymapi/internal/services"
)

const distributionCacheKey = "users:distribution"

type UserHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewUserHandler(db *gorm.DB, cache *services.RedisCache) *UserHandler {
	return &UserHandler{db: db, cache: cache}
}

// ListUsers returns all non-deleted users. Admin only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Scopes(models.Active).Find(&users).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user. The policy table admits the target user
// itself or an admin.
func (h *UserHandler) GetUser(c echo.Context) error {
	var user models.User
	err := h.db.Scopes(models.Active).First(&user, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser creates a user directly. Admin only.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	var existing models.User
	err := h.db.Scopes(models.Active).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "email is already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidUserRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		IsAdmin:      req.IsAdmin,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	h.invalidateDistribution(c)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/users/%d", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser replaces a user's mutable fields. The path id must match
// the payload id, checked before any lookup.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}
	if !models.ValidUserRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	var user models.User
	err := h.db.Scopes(models.Active).First(&user, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	var other models.User
	err = h.db.Scopes(models.Active).
		Where("email = ? AND id <> ?", req.Email, user.ID).
		First(&other).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "email is already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role
	user.IsAdmin = req.IsAdmin
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	h.invalidateDistribution(c)
	return c.NoContent(http.StatusNoContent)
}

// PromoteToInstructor sets the target's role to Instructor. No
// Instructor row is created; role and instructor-entity existence can
// diverge.
func (h *UserHandler) PromoteToInstructor(c echo.Context) error {
	var user models.User
	err := h.db.Scopes(models.Active).First(&user, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	user.Role = models.RoleInstructor
	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	h.invalidateDistribution(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "user promoted to instructor"})
}

// GetUserDistribution returns user counts grouped by role. Soft-deleted
// users are included in the counts.
func (h *UserHandler) GetUserDistribution(c echo.Context) error {
	rows, err := services.GetOrSet(h.cache, c.Request().Context(), distributionCacheKey, time.Minute,
		func() ([]RoleCount, error) {
			var rows []RoleCount
			err := h.db.Model(&models.User{}).
				Select("role, count(*) as count").
				Group("role").
				Scan(&rows).Error
			return rows, err
		})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// DeleteUser soft-deletes a user. Admin only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var user models.User
	err := h.db.Scopes(models.Active).First(&user, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	user.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	h.invalidateDistribution(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) invalidateDistribution(c echo.Context) {
	_ = h.cache.Delete(c.Request().Context(), distributionCacheKey)
}
