package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/navigation"
	"food-delivery-dashboard/statemachine"

	"github.com/gin-gonic/gin"
)

// GetNavigation returns the destinations the caller's role may open
func (h *Handler) GetNavigation(c *gin.Context) {
	role := middleware.GetRole(c)
	visible := navigation.Visible(role)
	landing := navigation.PathAuth
	if len(visible) > 0 {
		landing = visible[0].Path
	}
	c.JSON(http.StatusOK, gin.H{
		"role":         role,
		"destinations": visible,
		"landing":      landing,
	})
}

func (h *Handler) ResolveRoute(c *gin.Context) {
	c.JSON(http.StatusOK, navigation.Resolve(middleware.GetRole(c), c.Query("path")))
}

// GetRoutes lists the full route table (public)
func (h *Handler) GetRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"destinations": navigation.Destinations(),
		"routes":       navigation.Routes(),
	})
}

// GetStateMachineInfo returns both status machines for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders":      statemachine.GetOrderTransitions(),
		"deliveries":  statemachine.GetDeliveryTransitions(),
		"description": "Order and delivery status lifecycles",
	})
}
