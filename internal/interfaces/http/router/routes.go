package router

import (
	"github.com/astris/backend/internal/interfaces/http/handler"
)

// Handlers bundles every API handler the route table needs
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Project   *handler.ProjectHandler
	Pnl       *handler.PnlHandler
	Balance   *handler.BalanceHandler
	Aggregate *handler.AggregateHandler
	Billing   *handler.BillingHandler
	Webhook   *handler.StripeWebhookHandler
}

// Build assembles the route table. Authentication is enforced by the
// JWT middleware installed on the engine; the public endpoints are
// listed in its skip paths.
func Build(h Handlers) []RouteRegistrar {
	auth := NewDomainGroup("auth", "/auth").
		POST("/register", h.Auth.Register).
		POST("/verify-email", h.Auth.VerifyEmail).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/forgot-password", h.Auth.ForgotPassword).
		POST("/reset-password", h.Auth.ResetPassword)

	account := NewDomainGroup("account", "").
		GET("/me", h.Auth.GetCurrentUser)

	projects := NewDomainGroup("projects", "/projects").
		GET("", h.Project.ListProjects).
		POST("", h.Project.CreateProject).
		GET("/:id", h.Project.GetProject).
		PATCH("/:id", h.Project.UpdateProject).
		DELETE("/:id", h.Project.DeleteProject).
		GET("/:id/pnl", h.Pnl.ListRows).
		POST("/:id/pnl", h.Pnl.AddYear).
		PATCH("/:id/pnl/:year", h.Pnl.UpdateRow).
		POST("/:id/pnl/sync", h.Pnl.SyncFromBalance).
		DELETE("/:id/pnl", h.Pnl.DeleteRows).
		GET("/:id/balance", h.Balance.ListRows).
		POST("/:id/balance", h.Balance.CreateRow).
		PUT("/:id/balance/:year/amount", h.Balance.UpdateAmountField).
		PUT("/:id/balance/:year/ratio", h.Balance.UpdateRatioField).
		DELETE("/:id/balance", h.Balance.DeleteRows).
		GET("/:id/cashflow", h.Aggregate.GetCashflow).
		GET("/:id/dashboard", h.Aggregate.GetDashboard)

	pnlRows := NewDomainGroup("pnl-rows", "/pnl").
		GET("/rows/:id", h.Pnl.GetRow)

	billing := NewDomainGroup("billing", "/billing").
		GET("/entitlements", h.Billing.GetEntitlements).
		POST("/checkout", h.Billing.CreateCheckoutSession).
		POST("/portal", h.Billing.CreatePortalSession).
		POST("/webhook", h.Webhook.HandleStripeWebhook)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	return []RouteRegistrar{auth, account, projects, pnlRows, billing, system}
}
