package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/models"
	"github.com/wilding96/baby-tracker/internal/repository"
	"github.com/wilding96/baby-tracker/internal/stats"
)

// GetDailyStats returns per-day buckets over a trailing window for the
// trend charts. Sleep comes back in both raw minutes and one-decimal
// hours; the aggregation itself never rounds.
func GetDailyStats(logs *repository.LogRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}

		// Window parameter (default 7, max 90)
		days := 7
		if daysParam := c.Query("days"); daysParam != "" {
			parsed, err := strconv.Atoi(daysParam)
			if err != nil || parsed < 1 || parsed > 90 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
				return
			}
			days = parsed
		}

		now := time.Now()
		windowStart := startOfDay(now).AddDate(0, 0, -(days - 1))

		records, err := logs.ListSince(c.Request.Context(), baby.ID, windowStart)
		if err != nil {
			log.Error("failed to query logs for stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query stats"})
			return
		}

		buckets := stats.Aggregate(records, days, now)

		response := make([]models.DailyStatResponse, len(buckets))
		for i, b := range buckets {
			response[i] = models.DailyStatResponse{
				Date:              b.Date.Format(dateFormat),
				TotalFeedingML:    b.TotalFeedingML,
				TotalSleepMinutes: b.TotalSleepMinutes,
				TotalSleepHours:   stats.SleepHours(b.TotalSleepMinutes),
				DiaperCount:       b.Diapers.Total(),
				Diapers:           b.Diapers,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"baby_id": baby.ID,
			"days":    days,
			"stats":   response,
		})
	}
}
