package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/auth"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
)

// SessionMiddleware ties bearer tokens to the persisted learner session
type SessionMiddleware struct {
	tokens   *auth.TokenManager
	sessions *services.SessionService
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(tokens *auth.TokenManager, sessions *services.SessionService) *SessionMiddleware {
	return &SessionMiddleware{
		tokens:   tokens,
		sessions: sessions,
	}
}

// Required is middleware that requires a valid session token matching the
// active learner session
func (m *SessionMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		tokenString := parts[1]

		// Validate token signature and expiry
		claims, err := m.tokens.ParseSessionToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// The token must belong to the currently active session
		session := m.sessions.Current()
		if session == nil {
			return response.Unauthorized(c, "No active session")
		}
		if session.User.ID != claims.UserID {
			return response.Unauthorized(c, "Session no longer active")
		}

		// Store user info in context
		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_tier", claims.Tier)
		c.Locals("claims", claims)
		c.Locals("user", session.User)

		return c.Next()
	}
}

// RequireTier is middleware that requires one of the given subscription tiers.
// It must run after Required.
func (m *SessionMiddleware) RequireTier(tiers ...model.SubscriptionTier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userTier := c.Locals("user_tier")
		if userTier == nil {
			return response.Forbidden(c, "Access denied")
		}

		tier := model.SubscriptionTier(userTier.(string))
		for _, t := range tiers {
			if tier == t {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Upgrade required for this feature")
	}
}

// GetUser extracts the session user from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetUserID extracts the session user ID from context
func GetUserID(c *fiber.Ctx) (string, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
