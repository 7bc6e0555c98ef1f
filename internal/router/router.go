package router

import (
	"net/http"

	"tsehay_admin/internal/handlers"
	"tsehay_admin/internal/middleware"
	"tsehay_admin/internal/services"

	"github.com/gin-gonic/gin"
)

// Options carries what the routes need from the outside.
type Options struct {
	AuthService   services.AuthService
	SiteURL       string
	SecureCookies bool
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, opts Options) error {
	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)

	authHandler := handlers.NewAuthHandler(opts.AuthService, opts.SecureCookies)
	dashboardHandler := handlers.NewDashboardHandler(opts.SiteURL)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	SetupPublicAuthRoutes(engine.Group("/admin"), authHandler)

	authenticated := engine.Group("")
	authenticated.Use(middleware.AuthGate(opts.AuthService))
	{
		authenticated.POST("/admin/logout", authHandler.LogoutUser)
		SetupDashboardRoutes(authenticated.Group("/admin/dashboard"), dashboardHandler)
		SetupAPIRoutes(authenticated.Group("/api/v1"), dashboardHandler)
	}
	return nil
}

// SetupPublicAuthRoutes sets up the login routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("", authHandler.ShowLogin)
	group.POST("/login", authHandler.LoginUser)
}

// SetupDashboardRoutes sets up the dashboard screen and its form actions.
func SetupDashboardRoutes(group *gin.RouterGroup, h *handlers.DashboardHandler) {
	group.GET("", h.ShowDashboard)
	group.POST("/tables/:id/toggle", h.ToggleTable)

	menuRoutes := group.Group("/menu")
	{
		menuRoutes.POST("/items/:id/edit", h.BeginEdit)
		menuRoutes.POST("/edit/cancel", h.CancelEdit)
		menuRoutes.POST("/edit/save", h.SaveEdit)
		menuRoutes.POST("/add", h.BeginAdd)
		menuRoutes.POST("/add/cancel", h.CancelAdd)
		menuRoutes.POST("/add/submit", h.SubmitAdd)
	}
}

// SetupAPIRoutes sets up the JSON view of the dashboard.
func SetupAPIRoutes(group *gin.RouterGroup, h *handlers.DashboardHandler) {
	group.GET("/dashboard", h.ShowDashboard)
}
