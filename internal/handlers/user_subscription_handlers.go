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

type UserSubscriptionHandler struct {
	db *gorm.DB
}

func NewUserSubscriptionHandler(db *gorm.DB) *UserSubscriptionHandler {
	return &UserSubscriptionHandler{db: db}
}

// ListUserSubscriptions returns all non-deleted assignments.
func (h *UserSubscriptionHandler) ListUserSubscriptions(c echo.Context) error {
	var subs []models.UserSubscription
	if err := h.db.Scopes(models.Active).Find(&subs).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// GetUserSubscription returns one assignment.
func (h *UserSubscriptionHandler) GetUserSubscription(c echo.Context) error {
	var us models.UserSubscription
	err := h.db.Scopes(models.Active).First(&us, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user subscription not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, us)
}

// CreateUserSubscription assigns a plan to a user. A user may hold at
// most one active, non-deleted assignment per plan.
func (h *UserSubscriptionHandler) CreateUserSubscription(c echo.Context) error {
	var req CreateUserSubscriptionRequest
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

	var sub models.Subscription
	err = h.db.Scopes(models.Active).First(&sub, req.SubscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "subscription not found")
		}
		return err
	}

	var existing models.UserSubscription
	err = h.db.Scopes(models.Active).
		Where("user_id = ? AND subscription_id = ? AND is_active = ?", req.UserID, req.SubscriptionID, true).
		First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user already has an active subscription of this plan")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	us := models.UserSubscription{
		UserID:         req.UserID,
		SubscriptionID: req.SubscriptionID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       true,
	}
	if err := h.db.Create(&us).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/usersubscription/%d", us.ID))
	return c.JSON(http.StatusCreated, us)
}

// UpdateUserSubscription replaces the period and active flag. The user
// and plan references are immutable; reassignments are a new row.
func (h *UserSubscriptionHandler) UpdateUserSubscription(c echo.Context) error {
	var req UpdateUserSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}

	var us models.UserSubscription
	err := h.db.Scopes(models.Active).First(&us, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user subscription not found")
		}
		return err
	}

	us.StartDate = req.StartDate
	us.EndDate = req.EndDate
	us.IsActive = req.IsActive
	if err := h.db.Save(&us).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUserSubscription soft-deletes an assignment.
func (h *UserSubscriptionHandler) DeleteUserSubscription(c echo.Context) error {
	var us models.UserSubscription
	err := h.db.Scopes(models.Active).First(&us, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user subscription not found")
		}
		return err
	}

	us.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&us).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
