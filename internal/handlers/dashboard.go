package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/cache"
	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/models"
	"github.com/wilding96/baby-tracker/internal/repository"
	"github.com/wilding96/baby-tracker/internal/stats"
)

// GetDashboard returns the home-screen values for the resolved baby:
// time since the last feed plus today's sleep and diaper totals.
//
// Responses are served from the dashboard cache; mutations invalidate it
// and ?refresh=1 bypasses it (the client's manual refresh). The cached
// payload is only replaced after a fully successful fetch, so an upstream
// failure leaves the previously served values intact.
func GetDashboard(logs *repository.LogRepository, store cache.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}

		key := dashboardCacheKey(baby.ID)
		refresh := c.Query("refresh") != ""

		payload, gen, hit := store.Get(c.Request.Context(), key)
		if hit && !refresh {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}

		now := time.Now()

		lastFeed, err := logs.LastFeeding(c.Request.Context(), baby.ID)
		if err != nil {
			log.Error("failed to query last feeding", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		todayLogs, err := logs.ListSince(c.Request.Context(), baby.ID, startOfDay(now))
		if err != nil {
			log.Error("failed to query today's logs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		dashboard := stats.Reconcile(lastFeed, todayLogs, now)

		response := models.DashboardResponse{
			Baby:       babySummary(baby, now),
			Dashboard:  dashboard,
			TimeSince:  stats.FormatTimeSince(dashboard.TimeSinceFeedMinutes),
			RecentLogs: todayLogs,
		}

		body, err := json.Marshal(response)
		if err != nil {
			log.Error("failed to encode dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		// Dropped silently when a mutation invalidated the key while this
		// fetch was in flight; the next read recomputes
		store.Put(c.Request.Context(), key, gen, body)

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

func babySummary(baby *models.Baby, now time.Time) models.BabySummary {
	summary := models.BabySummary{
		ID:   baby.ID.String(),
		Name: baby.Name,
	}

	if baby.Birthday != nil {
		birthday := baby.Birthday.Format(dateFormat)
		summary.Birthday = &birthday

		// Negative while the birthday is still a due date in the future
		days := int(startOfDay(now).Sub(startOfDay(*baby.Birthday)).Hours() / 24)
		summary.AgeDays = &days
	}

	return summary
}
