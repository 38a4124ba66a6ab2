package handlers

import (
	"net/http"

	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/session"
	"food-delivery-dashboard/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Signup creates an account and opens a session for it
func (h *Handler) Signup(c *gin.Context) {
	var req session.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	sid := uuid.NewString()
	user, err := h.Sessions.Signup(c.Request.Context(), store.ForSession(h.KV, sid), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issue(c, http.StatusCreated, "Account created successfully", user, sid)
}

// Login authenticates a user and returns a JWT bound to a fresh session
func (h *Handler) Login(c *gin.Context) {
	var req session.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	sid := uuid.NewString()
	user, err := h.Sessions.Login(c.Request.Context(), store.ForSession(h.KV, sid), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issue(c, http.StatusOK, "Login successful", user, sid)
}

func (h *Handler) issue(c *gin.Context, status int, message string, user *models.User, sid string) {
	token, err := h.Tokens.GenerateToken(user, sid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"message": message,
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the session user
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch session.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badJSON(c, err)
		return
	}
	user, err := h.Sessions.UpdateUser(c.Request.Context(), middleware.Scope(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), middleware.Scope(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

type externalProjectRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50"`
}

// LinkExternalProject provisions a backing database for the user.
func (h *Handler) LinkExternalProject(c *gin.Context) {
	var req externalProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	project, err := h.Sessions.LinkExternalProject(c.Request.Context(), middleware.Scope(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"external_project": project})
}
