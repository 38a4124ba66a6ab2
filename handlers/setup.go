package handlers

import (
	"net/http"

	"food-delivery-dashboard/management"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListOrganizations(c *gin.Context) {
	orgs, err := h.Provisioner.ListOrganizations(c.Request.Context(), h.MgmtToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orgs), "organizations": orgs})
}

// CreateExternalProject provisions a database project and initializes its
// schema in one step
func (h *Handler) CreateExternalProject(c *gin.Context) {
	var params management.CreateProjectParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badJSON(c, err)
		return
	}
	ctx := c.Request.Context()
	creds, err := h.Provisioner.CreateProject(ctx, h.MgmtToken, params)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Provisioner.InitializeSchema(ctx, h.MgmtToken, creds.ProjectRef, creds.ServiceRoleKey); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Project created and schema initialized",
		"credentials": creds,
	})
}
