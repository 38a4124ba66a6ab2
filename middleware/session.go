package middleware

import (
	"errors"
	"net/http"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/navigation"
	"food-delivery-dashboard/registry"
	"food-delivery-dashboard/session"
	"food-delivery-dashboard/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ctxScope   = "sessionScope"
	ctxUser    = "sessionUser"
	ctxProject = "project"
)

// SessionRequired hydrates the session named by the token. A token whose
// session was logged out is rejected.
func SessionRequired(sessions *session.Store, kv store.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := store.ForSession(kv, GetSessionID(c))
		user, err := sessions.Current(c.Request.Context(), scope)
		if errors.Is(err, session.ErrNoSession) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &apierror.APIError{Error: err.Error(), Redirect: navigation.PathAuth})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("session hydrate failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			return
		}
		c.Set(ctxScope, scope)
		c.Set(ctxUser, user)
		c.Set(ctxRole, string(user.Role))
		c.Next()
	}
}

// Scope returns the KV scope of the current session
func Scope(c *gin.Context) store.KV {
	return c.MustGet(ctxScope).(store.KV)
}

func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUser).(*models.User)
}

// DestinationRequired gates a screen API by the navigation table. Callers
// outside the allow-list get 403 and the path they should go to instead.
func DestinationRequired(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		res := navigation.Resolve(role, path)
		if !res.Redirected {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, &apierror.APIError{
			Error:    "Access denied for role " + string(role),
			Redirect: res.Route.Path,
		})
	}
}

// ProjectRequired loads the project selected in the session.
func ProjectRequired(projects *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := projects.Selected(c.Request.Context(), Scope(c), CurrentUser(c))
		switch {
		case errors.Is(err, registry.ErrNoProjectSelected), errors.Is(err, registry.ErrNotMember):
			c.AbortWithStatusJSON(http.StatusConflict, &apierror.APIError{Error: err.Error(), Redirect: navigation.PathProjectSetup})
			return
		case err != nil:
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("load selected project failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			return
		}
		c.Set(ctxProject, summary)
		c.Next()
	}
}

func CurrentProject(c *gin.Context) *models.ProjectSummary {
	return c.MustGet(ctxProject).(*models.ProjectSummary)
}
