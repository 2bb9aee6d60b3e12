package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wilding96/baby-tracker/internal/models"
)

const (
	babyContextKey = "baby"
	babyRoleKey    = "baby_role"
)

// ErrNoBaby signals that the user has no linked baby profile. This is an
// onboarding state, not a failure.
var ErrNoBaby = errors.New("no baby profile linked")

var inviteCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6,7}$`)

// BabyResolver looks up the baby profile the user currently tracks
type BabyResolver interface {
	GetBabyForUser(ctx context.Context, userID uuid.UUID) (*models.Baby, string, error)
}

// RequireBaby resolves the authenticated user's baby profile and stores it
// in the request context. Requests from users without a membership get a
// 404 with code "no_baby" so clients can show the onboarding flow.
func RequireBaby(resolver BabyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetAuthUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		baby, role, err := resolver.GetBabyForUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrNoBaby) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "No baby profile linked",
					"code":  "no_baby",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve baby profile"})
			}
			c.Abort()
			return
		}

		c.Set(babyContextKey, baby)
		c.Set(babyRoleKey, role)

		c.Next()
	}
}

// GetBaby retrieves the resolved baby profile from context
func GetBaby(c *gin.Context) (*models.Baby, bool) {
	val, exists := c.Get(babyContextKey)
	if !exists {
		return nil, false
	}
	baby, ok := val.(*models.Baby)
	return baby, ok
}

// GetBabyRole retrieves the user's household role from context
func GetBabyRole(c *gin.Context) (string, bool) {
	val, exists := c.Get(babyRoleKey)
	if !exists {
		return "", false
	}
	role, ok := val.(string)
	return role, ok
}

// NormalizeInviteCode trims whitespace and uppercases user input
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateInviteCode checks invite code shape: 6-7 uppercase alphanumerics
func ValidateInviteCode(code string) bool {
	return inviteCodeRegex.MatchString(code)
}
