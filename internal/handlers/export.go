package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/export"
	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportLogs streams the baby's full log history as an Excel workbook
func ExportLogs(logs *repository.LogRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}

		records, err := logs.ListSince(c.Request.Context(), baby.ID, time.Time{})
		if err != nil {
			log.Error("failed to query logs for export", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query logs"})
			return
		}

		workbook, err := export.Workbook(baby.Name, records)
		if err != nil {
			log.Error("failed to build export workbook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
			return
		}

		filename := fmt.Sprintf("baby-logs-%s.xlsx", time.Now().Format(dateFormat))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, xlsxContentType, workbook)
	}
}
