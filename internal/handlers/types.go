package handlers

import (
	"time"

	"gymapi/internal/models"
)

// Request/response bodies shared by the handlers. Entities are
// serialized directly; these types exist where the wire shape differs
// from the row shape.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Role     models.UserRole `json:"role"`
	IsAdmin  bool            `json:"is_admin"`
}

type UpdateUserRequest struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Role    models.UserRole `json:"role"`
	IsAdmin bool            `json:"is_admin"`
	// Optional; when present the password is re-hashed.
	Password string `json:"password,omitempty"`
}

type RoleCount struct {
	Role  models.UserRole `json:"role"`
	Count int64           `json:"count"`
}

type CreateInstructorRequest struct {
	UserID uint  `json:"user_id"`
	GymID  *uint `json:"gym_id,omitempty"`
}

type CreateMemberRequest struct {
	UserID       uint  `json:"user_id"`
	InstructorID *uint `json:"instructor_id,omitempty"`
	GymID        *uint `json:"gym_id,omitempty"`
}

type UpdateMemberRequest struct {
	ID           uint  `json:"id"`
	InstructorID *uint `json:"instructor_id,omitempty"`
	IsActive     bool  `json:"is_active"`
}

type CreateSubscriptionRequest struct {
	Type       models.SubscriptionType `json:"type"`
	TotalPrice float64                 `json:"total_price"`
}

type UpdateSubscriptionRequest struct {
	ID         uint                    `json:"id"`
	Type       models.SubscriptionType `json:"type"`
	TotalPrice float64                 `json:"total_price"`
}

type CreateUserSubscriptionRequest struct {
	UserID         uint      `json:"user_id"`
	SubscriptionID uint      `json:"subscription_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

type UpdateUserSubscriptionRequest struct {
	ID        uint      `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

type CreatePaymentRequest struct {
	UserSubscriptionID uint                 `json:"user_subscription_id"`
	Amount             float64              `json:"amount"`
	PaymentDate        time.Time            `json:"payment_date"`
	Status             models.PaymentStatus `json:"status"`
	TransactionID      *string              `json:"transaction_id,omitempty"`
}

type UpdatePaymentRequest struct {
	ID            uint                 `json:"id"`
	Amount        float64              `json:"amount"`
	PaymentDate   time.Time            `json:"payment_date"`
	Status        models.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
}

type CreatePtSessionRequest struct {
	InstructorID uint                 `json:"instructor_id"`
	MemberID     uint                 `json:"member_id"`
	Price        float64              `json:"price"`
	SessionTime  time.Time            `json:"session_time"`
	Notes        string               `json:"notes"`
	Status       models.SessionStatus `json:"status"`
}

type UpdatePtSessionRequest struct {
	ID          uint                 `json:"id"`
	Price       float64              `json:"price"`
	SessionTime time.Time            `json:"session_time"`
	Notes       string               `json:"notes"`
	Status      models.SessionStatus `json:"status"`
}

type BookSessionRequest struct {
	InstructorID uint      `json:"instructor_id"`
	SessionTime  time.Time `json:"session_time"`
	Price        float64   `json:"price"`
	Notes        string    `json:"notes"`
}

type CreateGroupClassRequest struct {
	Type         models.GroupClassType `json:"type"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	StartTime    time.Time             `json:"start_time"`
	MaxCapacity  int                   `json:"max_capacity"`
	InstructorID *uint                 `json:"instructor_id,omitempty"`
	GymID        *uint                 `json:"gym_id,omitempty"`
}

type UpdateGroupClassRequest struct {
	ID           uint                  `json:"id"`
	Type         models.GroupClassType `json:"type"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	StartTime    time.Time             `json:"start_time"`
	MaxCapacity  int                   `json:"max_capacity"`
	InstructorID *uint                 `json:"instructor_id,omitempty"`
}

// MembershipSummary is the dashboard's derived view of the caller's
// current subscription.
type MembershipSummary struct {
	UserSubscription models.UserSubscription `json:"user_subscription"`
	DaysRemaining    int                     `json:"days_remaining"`
	PercentElapsed   float64                 `json:"percent_elapsed"`
}

type DashboardResponse struct {
	Membership    *MembershipSummary  `json:"membership,omitempty"`
	TodayClasses  []models.GroupClass `json:"today_classes"`
	TodaySessions []models.PtSession  `json:"today_sessions"`
	ClassCount    int64               `json:"class_count"`
	SessionCount  int64               `json:"session_count"`
	UpcomingCount int64               `json:"upcoming_count"`
}
