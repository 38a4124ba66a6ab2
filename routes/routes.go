package routes

import (
	"net/http"
	"time"

	"food-delivery-dashboard/config"
	"food-delivery-dashboard/handlers"
	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/navigation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the global middleware chain and every route.
func NewRouter(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins())))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Delivery Operations Dashboard API",
			"version": "1.0.0",
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Food Delivery Operations Dashboard API",
			"docs":    "/api/navigation/routes",
			"health":  "/health",
			"roles":   models.AllRoles,
		})
	})

	SetupRoutes(r, h, middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute))
	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, limiter *middleware.LoginRateLimiter) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", limiter.Handler(), h.Login)
		public.GET("/navigation/routes", h.GetRoutes)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Session routes ─────────────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(h.Tokens.AuthRequired(), middleware.SessionRequired(h.Sessions, h.KV))
	{
		auth.GET("/auth/me", h.GetProfile)
		auth.PATCH("/auth/me", h.UpdateProfile)
		auth.POST("/auth/logout", h.Logout)
		auth.POST("/auth/external-projects", h.LinkExternalProject)

		auth.GET("/navigation", h.GetNavigation)
		auth.GET("/navigation/resolve", h.ResolveRoute)
	}

	// ── Project setup ──────────────────────────────────────────────
	setup := auth.Group("/setup")
	setup.Use(middleware.RoleRequired(models.RoleMainAdmin))
	{
		setup.GET("/organizations", h.ListOrganizations)
		setup.POST("/external-project", h.CreateExternalProject)
	}

	projects := auth.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", middleware.RoleRequired(models.RoleMainAdmin), h.CreateProject)
		projects.GET("/code", h.GenerateCode)
		projects.POST("/join", h.JoinProject)
		projects.GET("/selected", h.GetSelectedProject)
		projects.POST("/:id/select", h.SelectProject)
		projects.GET("/:id", h.GetProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/:id/regenerate-code", h.RegenerateCode)
	}

	// ── Screens: need a selected project and the navigation grant ──
	screens := auth.Group("")
	screens.Use(middleware.ProjectRequired(h.Projects))

	screens.GET("/dashboard", middleware.DestinationRequired(navigation.PathDashboard), h.GetDashboard)

	orders := screens.Group("/orders", middleware.DestinationRequired(navigation.PathOrders))
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/stats", h.GetOrderStats)
		orders.PUT("/:id/deliver", h.DeliverOrder)
	}

	delivery := screens.Group("/delivery", middleware.DestinationRequired(navigation.PathDelivery))
	{
		delivery.GET("/deliveries", h.ListDeliveries)
		delivery.GET("/drivers", h.ListDrivers)
		delivery.POST("/drivers", h.CreateDriver)
		delivery.PUT("/deliveries/:id/status", h.UpdateDeliveryStatus)
	}

	finance := screens.Group("/finance", middleware.DestinationRequired(navigation.PathFinance))
	{
		finance.GET("", h.GetFinance)
		finance.POST("/expenditures", h.AddExpenditure)
	}

	stats := screens.Group("/stats", middleware.DestinationRequired(navigation.PathStats))
	{
		stats.GET("", h.GetStats)
		stats.GET("/export", h.ExportStats)
	}

	screens.GET("/project", middleware.DestinationRequired(navigation.PathProjectSettings), h.GetProjectSettings)
}
