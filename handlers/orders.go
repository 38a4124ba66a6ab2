package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/screens"

	"github.com/gin-gonic/gin"
)

// ListOrders supports ?search=, ?status=pending|delivered and ?sort=asc|desc
func (h *Handler) ListOrders(c *gin.Context) {
	var q screens.OrderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badJSON(c, err)
		return
	}
	orders, err := h.Orders.List(c.Request.Context(), middleware.CurrentProject(c).Project.ID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var input screens.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badJSON(c, err)
		return
	}
	order, err := h.Orders.Create(c.Request.Context(), middleware.CurrentProject(c).Project.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "order": order})
}

// DeliverOrder transitions pending → delivered; repeating it is harmless
func (h *Handler) DeliverOrder(c *gin.Context) {
	order, err := h.Orders.MarkDelivered(c.Request.Context(), middleware.GetRole(c), middleware.CurrentProject(c).Project.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order delivered", "order": order})
}

func (h *Handler) GetOrderStats(c *gin.Context) {
	stats, err := h.Orders.Stats(c.Request.Context(), middleware.CurrentProject(c).Project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
