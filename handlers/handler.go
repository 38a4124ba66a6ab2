// Package handlers exposes the session, project and screen services over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/management"
	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/registry"
	"food-delivery-dashboard/screens"
	"food-delivery-dashboard/session"
	"food-delivery-dashboard/statemachine"
	"food-delivery-dashboard/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Sessions    *session.Store
	KV          store.KV
	Tokens      *middleware.TokenIssuer
	Projects    *registry.Registry
	Orders      *screens.Orders
	Delivery    *screens.Delivery
	Finance     *screens.Finance
	Stats       *screens.Statistics
	Settings    *screens.Settings
	Provisioner management.Provisioner
	MgmtToken   string
}

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		verr   *apierror.ValidationError
		terr   *statemachine.TransitionError
		mgmErr *management.APIError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, registry.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, apierror.Body(err))
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrNoSession):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, registry.ErrNotOwner), errors.Is(err, registry.ErrNotMember), errors.Is(err, registry.ErrCreateForbidden):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, registry.ErrProjectNotFound), errors.Is(err, datasource.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, session.ErrEmailTaken), errors.Is(err, registry.ErrCodeTaken), errors.Is(err, registry.ErrNoProjectSelected):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &terr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    terr.From,
			"reason":            err.Error(),
			"valid_next_states": terr.ValidNext,
		})
	case errors.As(err, &mgmErr):
		c.JSON(http.StatusBadGateway, apierror.New(mgmErr.Message))
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, apierror.New("Invalid request body: "+err.Error()))
}
