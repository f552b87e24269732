package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sports-scheduler/config"
)

var (
	ErrTokenExpired = errors.New("feed token expired")
	ErrTokenInvalid = errors.New("feed token invalid")
)

const (
	issuer        = "sports-scheduler"
	tokenTypeFeed = "calendar_feed"
)

// Claims of a calendar feed token. The token grants read-only access to
// one official's schedule and nothing else.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies feed tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager from calendar settings.
func NewManager(cfg *config.CalendarConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
	}
}

// GenerateFeedToken issues a token for userID. It returns the expiry with it.
func (m *Manager) GenerateFeedToken(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID:    userID,
		TokenType: tokenTypeFeed,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseFeedToken verifies the signature, expiry and token type.
func (m *Manager) ParseFeedToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeFeed || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
