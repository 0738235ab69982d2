package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenConfig holds session token configuration. Clock is the time source
// used to validate expiry and not-before claims; it must be the same clock
// that stamps them at mint time, or simulated delays push tokens into the
// future relative to the validator. Defaults to the wall clock.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
	Clock  clock.Clock
}

// SessionClaims are the claims carried by a session token. The token is
// fabricated at sign-in; there is no identity provider behind it.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Tier   string `json:"tier"`
	jwt.RegisteredClaims
}

// TokenManager mints and parses signed session tokens
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new token manager
func NewTokenManager(config TokenConfig) *TokenManager {
	if config.Clock == nil {
		config.Clock = clock.Real{}
	}
	return &TokenManager{
		config: config,
	}
}

// MintSessionToken generates a signed token for a fabricated user record
func (m *TokenManager) MintSessionToken(user *model.User, now time.Time) (string, error) {
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Tier:   string(user.Tier),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

// ParseSessionToken validates a token signature and returns its claims
func (m *TokenManager) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.Secret), nil
	}, jwt.WithTimeFunc(m.config.Clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
