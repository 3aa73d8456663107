package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) KPIs(c *gin.Context) {
	kpis, err := h.analyticsService.KPIs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (h *AnalyticsHandler) Productivity(c *gin.Context) {
	out, err := h.analyticsService.Productivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Insights summarizes the caller's own assigned tasks.
func (h *AnalyticsHandler) Insights(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Insights(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
