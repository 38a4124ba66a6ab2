package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/screens"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// brokenOrders fails every order read and inherits the rest from Source.
type brokenOrders struct {
	datasource.Source
}

func (brokenOrders) ListOrders(context.Context, string) ([]models.Order, error) {
	return nil, errors.New("connection reset")
}

func exportRouter(source datasource.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Stats: screens.NewStatistics(source)}
	r := gin.New()
	r.GET("/export", func(c *gin.Context) {
		c.Set("project", &models.ProjectSummary{Project: models.Project{ID: "p1", Code: "ACME01"}})
		c.Next()
	}, h.ExportStats)
	return r
}

func TestExportStats(t *testing.T) {
	t.Run("writes csv", func(t *testing.T) {
		w := httptest.NewRecorder()
		exportRouter(datasource.NewSeededSource(1)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-ACME01.csv")
		assert.Contains(t, w.Body.String(), "SN-1004")
	})

	t.Run("source failure is a 500 without partial csv", func(t *testing.T) {
		w := httptest.NewRecorder()
		exportRouter(brokenOrders{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Empty(t, w.Header().Get("Content-Disposition"))
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}
