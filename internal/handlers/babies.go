package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/models"
	"github.com/wilding96/baby-tracker/internal/repository"
)

const dateFormat = "2006-01-02"

type CreateBabyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Birthday *string `json:"birthday"` // YYYY-MM-DD, birthday or due date
	Gender   *string `json:"gender"`   // male|female|other
}

type JoinBabyRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type UpdateBabyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Birthday *string `json:"birthday"`
	Gender   *string `json:"gender"`
}

func parseBirthday(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validGender(g *string) bool {
	if g == nil {
		return true
	}
	switch *g {
	case "male", "female", "other":
		return true
	}
	return false
}

// CreateBaby creates a baby profile and the creator's owner membership in
// one transaction, so the household is never left half-created
func CreateBaby(babies *repository.BabyRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req CreateBabyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Baby name is required"})
			return
		}

		birthday, err := parseBirthday(req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Birthday must be YYYY-MM-DD"})
			return
		}
		if !validGender(req.Gender) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gender must be male, female or other"})
			return
		}

		baby := models.Baby{
			Name:     strings.TrimSpace(req.Name),
			Birthday: birthday,
			Gender:   req.Gender,
		}

		if err := babies.CreateWithOwner(c.Request.Context(), &baby, userID); err != nil {
			log.Error("failed to create baby profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create baby profile"})
			return
		}

		c.JSON(http.StatusCreated, baby)
	}
}

// JoinBaby adds the user to an existing household via invite code
func JoinBaby(babies *repository.BabyRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req JoinBabyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		code := middleware.NormalizeInviteCode(req.InviteCode)
		if !middleware.ValidateInviteCode(code) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code must be 6-7 letters or digits"})
			return
		}

		baby, err := babies.GetByInviteCode(c.Request.Context(), code)
		if err != nil {
			if errors.Is(err, repository.ErrInviteCodeNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invite code not recognized"})
				return
			}
			log.Error("failed to look up invite code", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite code"})
			return
		}

		err = babies.AddMember(c.Request.Context(), baby.ID, userID, models.RoleMember)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyMember) {
				c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this household"})
				return
			}
			log.Error("failed to join household", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join household"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"baby_id": baby.ID,
			"name":    baby.Name,
			"role":    models.RoleMember,
		})
	}
}

// GetCurrentBaby returns the resolved baby profile for the logged-in user
func GetCurrentBaby() gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}
		role, _ := middleware.GetBabyRole(c)

		c.JSON(http.StatusOK, gin.H{
			"baby": baby,
			"role": role,
		})
	}
}

// UpdateBaby edits the baby profile fields exposed on the settings screen
func UpdateBaby(babies *repository.BabyRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		baby, ok := middleware.GetBaby(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Baby context not found"})
			return
		}

		babyID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid baby ID format"})
			return
		}
		if babyID != baby.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this baby's household"})
			return
		}

		var req UpdateBabyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Baby name is required"})
			return
		}

		birthday, err := parseBirthday(req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Birthday must be YYYY-MM-DD"})
			return
		}
		if !validGender(req.Gender) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gender must be male, female or other"})
			return
		}

		baby.Name = strings.TrimSpace(req.Name)
		baby.Birthday = birthday
		baby.Gender = req.Gender

		if err := babies.Update(c.Request.Context(), baby); err != nil {
			if errors.Is(err, repository.ErrBabyNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Baby profile not found"})
				return
			}
			log.Error("failed to update baby profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update baby profile"})
			return
		}

		c.JSON(http.StatusOK, baby)
	}
}
