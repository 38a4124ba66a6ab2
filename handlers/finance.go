package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/screens"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetFinance(c *gin.Context) {
	var q screens.ExpenditureQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badJSON(c, err)
		return
	}
	overview, err := h.Finance.Overview(c.Request.Context(), middleware.CurrentProject(c).Project.ID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":      overview.Summary,
		"categories":   models.ExpenditureCategories,
		"count":        len(overview.Expenditures),
		"expenditures": overview.Expenditures,
	})
}

func (h *Handler) AddExpenditure(c *gin.Context) {
	var input screens.ExpenditureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badJSON(c, err)
		return
	}
	expenditure, summary, err := h.Finance.AddExpenditure(c.Request.Context(), middleware.CurrentProject(c).Project.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Expenditure added", "expenditure": expenditure, "summary": summary})
}
