package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/database"
)

// RecordUsage adds one request and its volume to today's counters for the calling key
func (h *Handler) RecordUsage(c *gin.Context, employees, assignments int) {
	apiKey, ok := currentKey(c)
	if !ok {
		return
	}
	if err := database.RecordUsage(h.DB, apiKey.ID, employees, assignments, h.clock()); err != nil {
		h.Logger.Warn("record usage failed", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	usage, err := database.UsageHistory(h.DB, apiKey.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalEmployees, totalAssignments int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalEmployees += int64(u.TotalEmployees)
		totalAssignments += int64(u.TotalAssignments)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    h.rateLimit(apiKey.RateLimit),
		"usage_history": usage,
		"totals": gin.H{
			"requests":    totalRequests,
			"employees":   totalEmployees,
			"assignments": totalAssignments,
		},
	})
}
