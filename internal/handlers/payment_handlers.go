package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymapi/internal/models"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// ListPayments returns all non-deleted payments.
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	var payments []models.Payment
	if err := h.db.Scopes(models.Active).Find(&payments).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// GetPayment returns one payment.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	var payment models.Payment
	err := h.db.Scopes(models.Active).First(&payment, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// CreatePayment records a payment against a user subscription. A
// transaction id is generated when the caller does not supply one.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var us models.UserSubscription
	err := h.db.Scopes(models.Active).First(&us, req.UserSubscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user subscription not found")
		}
		return err
	}

	status := req.Status
	if status == "" {
		status = models.PaymentPending
	}
	if !models.ValidPaymentStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	txID := req.TransactionID
	if txID == nil {
		generated := uuid.NewString()
		txID = &generated
	}

	payment := models.Payment{
		UserSubscriptionID: req.UserSubscriptionID,
		Amount:             req.Amount,
		PaymentDate:        req.PaymentDate,
		Status:             status,
		TransactionID:      txID,
	}
	if err := h.db.Create(&payment).Error; err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/payment/%d", payment.ID))
	return c.JSON(http.StatusCreated, payment)
}

// UpdatePayment replaces a payment's mutable fields.
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	var req UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Param("id") != strconv.FormatUint(uint64(req.ID), 10) {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}
	if !models.ValidPaymentStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	var payment models.Payment
	err := h.db.Scopes(models.Active).First(&payment, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return err
	}

	payment.Amount = req.Amount
	payment.PaymentDate = req.PaymentDate
	payment.Status = req.Status
	if req.TransactionID != nil {
		payment.TransactionID = req.TransactionID
	}
	if err := h.db.Save(&payment).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePayment soft-deletes a payment.
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	var payment models.Payment
	err := h.db.Scopes(models.Active).First(&payment, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return err
	}

	payment.MarkDeleted(time.Now().UTC())
	if err := h.db.Save(&payment).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
