// api/handlers/analytics_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"takamul/api/analytics"
)

type AnalyticsHandlers struct {
	Engine *analytics.Engine
}

func NewAnalyticsHandlers(engine *analytics.Engine) *AnalyticsHandlers {
	return &AnalyticsHandlers{Engine: engine}
}

// GetAnalytics serves the dashboard summary. The period parameter is
// optional; unrecognized values fall back to 7d inside the engine rather
// than erroring. Engine failures surface as a generic 500 with the cause
// logged server-side only.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	period := c.Query("period")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	report, err := h.Engine.ComputeReport(ctx, period, time.Now().UTC())
	if err != nil {
		log.Printf("Error computing analytics report (period=%q): %v", period, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
