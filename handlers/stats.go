package handlers

import (
	"bytes"
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/navigation"

	"github.com/gin-gonic/gin"
)

// GetDashboard is the landing screen: the selected project, its delivery
// counters and where the caller may navigate next
func (h *Handler) GetDashboard(c *gin.Context) {
	project := middleware.CurrentProject(c)
	stats, err := h.Orders.Stats(c.Request.Context(), project.Project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":      project,
		"delivery":     stats,
		"destinations": navigation.Visible(middleware.GetRole(c)),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	dash, err := h.Stats.Dashboard(c.Request.Context(), middleware.CurrentProject(c).Project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ExportStats returns the project's orders as a CSV attachment
func (h *Handler) ExportStats(c *gin.Context) {
	project := middleware.CurrentProject(c)
	var buf bytes.Buffer
	if err := h.Stats.ExportCSV(c.Request.Context(), project.Project.ID, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders-`+project.Project.Code+`.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) GetProjectSettings(c *gin.Context) {
	settings, err := h.Settings.Settings(c.Request.Context(), middleware.CurrentProject(c).Project)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
