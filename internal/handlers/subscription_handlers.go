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

type SubscriptionHandler struct {
	db *gorm.DB
}

func NewSubscriptionHandler(db *gorm.DB) *SubscriptionHandler {
	return &SubscriptionHandler{db: db}
}

// ListSubscriptions returns all non-deleted plans.
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	var subs []models.Subscription
	if err := h.db.Scopes(models.Active).Find(&subs).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// GetSubscription returns one plan.
func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	var sub models.Subscription
	err := h.db.Scopes(models.Active).First(&sub, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// CreateSubscription creates a plan.
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !models.ValidSubscriptionType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription type")
	}

	sub := models.Subscription{Type: req.Type, TotalPrice: req.TotalPrice}
	if err := h.db.Create(&sub).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/subscriptions/%d", sub.ID))
	return c.JSON(http.StatusCreated, sub)
}

// UpdateSubscription replaces a plan's type and price.
func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}
	if !models.ValidSubscriptionType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription type")
	}

	var sub models.Subscription
	err := h.db.Scopes(models.Active).First(&sub, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
		}
		return err
	}

	sub.Type = req.Type
	sub.TotalPrice = req.TotalPrice
	if err := h.db.Save(&sub).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetMySubscription returns the caller's most recent non-deleted
// user subscription.
func (h *SubscriptionHandler) GetMySubscription(c echo.Context) error {
	var us models.UserSubscription
	err := h.db.Scopes(models.Active).
		Preload("Subscription").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at desc").
		First(&us).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no subscription found")
		}
		return err
	}
	return c.JSON(http.StatusOK, us)
}

// DeleteSubscription soft-deletes a plan.
func (h *SubscriptionHandler) DeleteSubscription(c echo.Context) error {
	var sub models.Subscription
	err := h.db.Scopes(models.Active).First(&sub, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
		}
		return err
	}

	sub.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&sub).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
