package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/cache"
	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/models"
	"github.com/wilding96/baby-tracker/internal/repository"
)

func dashboardCacheKey(babyID uuid.UUID) string {
	return "dashboard:" + babyID.String()
}

type CreateLogRequest struct {
	BabyID    uuid.UUID          `json:"baby_id" binding:"required"`
	Type      models.LogType     `json:"type" binding:"required"`
	StartTime time.Time          `json:"start_time" binding:"required"`
	EndTime   *time.Time         `json:"end_time"`
	Details   *models.LogDetails `json:"details"`
}

type UpdateLogRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}

// CreateLog records a feeding, sleep or diaper event. The baby must be
// named explicitly and the caller must be a member of its household.
func CreateLog(logs *repository.LogRepository, babies *repository.BabyRepository, store cache.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req CreateLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if _, err := babies.MembershipRole(c.Request.Context(), req.BabyID, userID); err != nil {
			if errors.Is(err, repository.ErrNotMember) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this baby's household"})
				return
			}
			log.Error("failed to check household membership", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
			return
		}

		rec := models.LogRecord{
			BabyID:    req.BabyID,
			Type:      req.Type,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Details:   req.Details,
		}

		// Sleep entries are logged as an interval; derive the duration
		// when the client sends only the boundaries
		if rec.Type == models.LogTypeSleep && rec.EndTime != nil {
			if rec.Details == nil {
				rec.Details = &models.LogDetails{}
			}
			if rec.Details.DurationMinutes == nil {
				minutes := int(rec.EndTime.Sub(rec.StartTime).Minutes())
				rec.Details.DurationMinutes = &minutes
			}
		}

		if err := rec.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := logs.Create(c.Request.Context(), &rec); err != nil {
			log.Error("failed to create log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create log"})
			return
		}

		store.Invalidate(c.Request.Context(), dashboardCacheKey(rec.BabyID))

		c.JSON(http.StatusCreated, rec)
	}
}

// ListLogs returns the resolved baby's logs since a time bound, newest
// first. Defaults to the start of today.
func ListLogs(logs *repository.LogRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}

		since := startOfDay(time.Now())
		if raw := c.Query("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an RFC 3339 timestamp"})
				return
			}
			since = parsed
		}

		records, err := logs.ListSince(c.Request.Context(), baby.ID, since)
		if err != nil {
			log.Error("failed to query logs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query logs"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"logs":  records,
			"count": len(records),
		})
	}
}

// UpdateLogStartTime edits a record's start time, the only field-level
// edit exposed to users. For a sleep interval the stored duration is
// recomputed against the unchanged end boundary so it never goes stale.
func UpdateLogStartTime(logs *repository.LogRepository, babies *repository.BabyRepository, store cache.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log ID format"})
			return
		}

		var req UpdateLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		rec, err := logs.GetByID(c.Request.Context(), logID)
		if err != nil {
			if errors.Is(err, repository.ErrLogNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
				return
			}
			log.Error("failed to load log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load log"})
			return
		}

		if _, err := babies.MembershipRole(c.Request.Context(), rec.BabyID, userID); err != nil {
			if errors.Is(err, repository.ErrNotMember) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this baby's household"})
				return
			}
			log.Error("failed to check household membership", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
			return
		}

		if rec.EndTime != nil && req.StartTime.After(*rec.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must not pass end_time"})
			return
		}

		details := rec.Details
		if rec.Type == models.LogTypeSleep && rec.EndTime != nil {
			minutes := int(rec.EndTime.Sub(req.StartTime).Minutes())
			if details == nil {
				details = &models.LogDetails{}
			}
			details.DurationMinutes = &minutes
		}

		if err := logs.UpdateStartTime(c.Request.Context(), logID, req.StartTime, details); err != nil {
			if errors.Is(err, repository.ErrLogNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
				return
			}
			log.Error("failed to update log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update log"})
			return
		}

		store.Invalidate(c.Request.Context(), dashboardCacheKey(rec.BabyID))

		rec.StartTime = req.StartTime
		rec.Details = details
		c.JSON(http.StatusOK, rec)
	}
}

// DeleteLog removes a record permanently. Confirmation is a client
// concern; the API deletes on request.
func DeleteLog(logs *repository.LogRepository, babies *repository.BabyRepository, store cache.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log ID format"})
			return
		}

		rec, err := logs.GetByID(c.Request.Context(), logID)
		if err != nil {
			if errors.Is(err, repository.ErrLogNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
				return
			}
			log.Error("failed to load log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load log"})
			return
		}

		if _, err := babies.MembershipRole(c.Request.Context(), rec.BabyID, userID); err != nil {
			if errors.Is(err, repository.ErrNotMember) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this baby's household"})
				return
			}
			log.Error("failed to check household membership", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
			return
		}

		if err := logs.Delete(c.Request.Context(), logID); err != nil {
			if errors.Is(err, repository.ErrLogNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
				return
			}
			log.Error("failed to delete log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete log"})
			return
		}

		store.Invalidate(c.Request.Context(), dashboardCacheKey(rec.BabyID))

		c.JSON(http.StatusOK, gin.H{"deleted": logID})
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
