package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/registry"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(projects), "projects": projects})
}

// CreateProject registers a project owned by the caller (main_admin only)
func (h *Handler) CreateProject(c *gin.Context) {
	var input registry.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badJSON(c, err)
		return
	}
	summary, err := h.Projects.Create(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Project created", "project": summary})
}

// GenerateCode suggests an unused join code
func (h *Handler) GenerateCode(c *gin.Context) {
	code, err := h.Projects.GenerateUniqueCode(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

type joinRequest struct {
	Code string `json:"code"`
}

func (h *Handler) JoinProject(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	summary, err := h.Projects.Join(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined project", "project": summary})
}

func (h *Handler) GetSelectedProject(c *gin.Context) {
	summary, err := h.Projects.Selected(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": summary})
}

func (h *Handler) SelectProject(c *gin.Context) {
	summary, err := h.Projects.Select(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project selected", "project": summary})
}

func (h *Handler) GetProject(c *gin.Context) {
	summary, err := h.Projects.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": summary})
}

// DeleteProject removes a project and all of its records (owner only)
func (h *Handler) DeleteProject(c *gin.Context) {
	err := h.Projects.Remove(c.Request.Context(), middleware.Scope(c), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *Handler) RegenerateCode(c *gin.Context) {
	code, err := h.Projects.RegenerateCode(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project code regenerated", "code": code})
}
