package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/screens"

	"github.com/gin-gonic/gin"
)

// ListDeliveries supports ?view=active|history|all
func (h *Handler) ListDeliveries(c *gin.Context) {
	view := screens.DeliveryView(c.Query("view"))
	deliveries, err := h.Delivery.ListDeliveries(c.Request.Context(), middleware.CurrentProject(c).Project.ID, view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

func (h *Handler) ListDrivers(c *gin.Context) {
	status := models.DriverStatus(c.Query("status"))
	drivers, err := h.Delivery.ListDrivers(c.Request.Context(), middleware.CurrentProject(c).Project.ID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(drivers), "drivers": drivers})
}

func (h *Handler) CreateDriver(c *gin.Context) {
	var input screens.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badJSON(c, err)
		return
	}
	driver, err := h.Delivery.AddDriver(c.Request.Context(), middleware.CurrentProject(c).Project.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Driver added", "driver": driver})
}

type UpdateDeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus advances a delivery through its lifecycle
func (h *Handler) UpdateDeliveryStatus(c *gin.Context) {
	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	delivery, err := h.Delivery.AdvanceDelivery(c.Request.Context(), middleware.GetRole(c), middleware.CurrentProject(c).Project.ID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery status updated to " + string(delivery.Status), "delivery": delivery})
}
