package handlers

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymapi/internal/middleware"
	"gymapi/internal/services"
)

// Register wires every API route onto the Echo instance. All routes
// except auth sit behind RequireAuth; per-route entitlement comes from
// the policy table.
func Register(e *echo.Echo, db *gorm.DB, cache *services.RedisCache, tokens *services.TokenService) {
	authHandler := NewAuthHandler(db, tokens)
	userHandler := NewUserHandler(db, cache)
	instructorHandler := NewInstructorHandler(db)
	memberHandler := NewMemberHandler(db)
	subscriptionHandler := NewSubscriptionHandler(db)
	userSubHandler := NewUserSubscriptionHandler(db)
	paymentHandler := NewPaymentHandler(db)
	ptSessionHandler := NewPtSessionHandler(db)
	groupClassHandler := NewGroupClassHandler(db, cache)
	dashboardHandler := NewDashboardHandler(db)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth(tokens))

	users := protected.Group("/users")
	users.GET("", userHandler.ListUsers, middleware.Authorize("users", "list"))
	users.POST("", userHandler.CreateUser, middleware.Authorize("users", "create"))
	users.GET("/distribution", userHandler.GetUserDistribution, middleware.Authorize("users", "distribution"))
	users.GET("/:id", userHandler.GetUser, middleware.Authorize("users", "get"))
	users.PUT("/:id", userHandler.UpdateUser, middleware.Authorize("users", "update"))
	users.DELETE("/:id", userHandler.DeleteUser, middleware.Authorize("users", "delete"))
	users.POST("/promote/:id", userHandler.PromoteToInstructor, middleware.Authorize("users", "promote"))

	instructors := protected.Group("/instructor")
	instructors.GET("", instructorHandler.ListInstructors, middleware.Authorize("instructor", "list"))
	instructors.POST("", instructorHandler.CreateInstructor, middleware.Authorize("instructor", "create"))
	instructors.GET("/:id", instructorHandler.GetInstructor, middleware.Authorize("instructor", "get"))
	instructors.PUT("/:id", instructorHandler.UpdateInstructor, middleware.Authorize("instructor", "update"))
	instructors.DELETE("/:id", instructorHandler.DeleteInstructor, middleware.Authorize("instructor", "delete"))

	members := protected.Group("/member")
	members.GET("", memberHandler.ListMembers, middleware.Authorize("member", "list"))
	members.POST("", memberHandler.CreateMember, middleware.Authorize("member", "create"))
	members.GET("/:id", memberHandler.GetMember, middleware.Authorize("member", "get"))
	members.PUT("/:id", memberHandler.UpdateMember, middleware.Authorize("member", "update"))
	members.DELETE("/:id", memberHandler.DeleteMember, middleware.Authorize("member", "delete"))

	subscriptions := protected.Group("/subscriptions")
	subscriptions.GET("", subscriptionHandler.ListSubscriptions, middleware.Authorize("subscriptions", "list"))
	subscriptions.POST("", subscriptionHandler.CreateSubscription, middleware.Authorize("subscriptions", "create"))
	subscriptions.GET("/my", subscriptionHandler.GetMySubscription, middleware.Authorize("subscriptions", "my"))
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription, middleware.Authorize("subscriptions", "get"))
	subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription, middleware.Authorize("subscriptions", "update"))
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription, middleware.Authorize("subscriptions", "delete"))

	userSubs := protected.Group("/usersubscription")
	userSubs.GET("", userSubHandler.ListUserSubscriptions, middleware.Authorize("usersubscription", "list"))
	userSubs.POST("", userSubHandler.CreateUserSubscription, middleware.Authorize("usersubscription", "create"))
	userSubs.GET("/:id", userSubHandler.GetUserSubscription, middleware.Authorize("usersubscription", "get"))
	userSubs.PUT("/:id", userSubHandler.UpdateUserSubscription, middleware.Authorize("usersubscription", "update"))
	userSubs.DELETE("/:id", userSubHandler.DeleteUserSubscription, middleware.Authorize("usersubscription", "delete"))

	payments := protected.Group("/payment")
	payments.GET("", paymentHandler.ListPayments, middleware.Authorize("payment", "list"))
	payments.POST("", paymentHandler.CreatePayment, middleware.Authorize("payment", "create"))
	payments.GET("/:id", paymentHandler.GetPayment, middleware.Authorize("payment", "get"))
	payments.PUT("/:id", paymentHandler.UpdatePayment, middleware.Authorize("payment", "update"))
	payments.DELETE("/:id", paymentHandler.DeletePayment, middleware.Authorize("payment", "delete"))

	ptSessions := protected.Group("/ptsession")
	ptSessions.GET("", ptSessionHandler.ListPtSessions, middleware.Authorize("ptsession", "list"))
	ptSessions.POST("", ptSessionHandler.CreatePtSession, middleware.Authorize("ptsession", "create"))
	ptSessions.POST("/book", ptSessionHandler.BookSession, middleware.Authorize("ptsession", "book"))
	ptSessions.GET("/:id", ptSessionHandler.GetPtSession, middleware.Authorize("ptsession", "get"))
	ptSessions.PUT("/:id", ptSessionHandler.UpdatePtSession, middleware.Authorize("ptsession", "update"))
	ptSessions.DELETE("/:id", ptSessionHandler.DeletePtSession, middleware.Authorize("ptsession", "delete"))

	groupClasses := protected.Group("/groupclass")
	groupClasses.GET("", groupClassHandler.ListGroupClasses, middleware.Authorize("groupclass", "list"))
	groupClasses.POST("", groupClassHandler.CreateGroupClass, middleware.Authorize("groupclass", "create"))
	groupClasses.GET("/:id", groupClassHandler.GetGroupClass, middleware.Authorize("groupclass", "get"))
	groupClasses.PUT("/:id", groupClassHandler.UpdateGroupClass, middleware.Authorize("groupclass", "update"))
	groupClasses.DELETE("/:id", groupClassHandler.DeleteGroupClass, middleware.Authorize("groupclass", "delete"))
	groupClasses.POST("/:id/enroll", groupClassHandler.Enroll, middleware.Authorize("groupclass", "enroll"))
	groupClasses.DELETE("/:id/enroll", groupClassHandler.Unenroll, middleware.Authorize("groupclass", "enroll"))

	protected.GET("/dashboard", dashboardHandler.Dashboard, middleware.Authorize("dashboard", "view"))
}
