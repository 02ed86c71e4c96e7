package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSessionSigningKey = errors.New("session validator: signing key required")
	ErrMissingSessionIssuer     = errors.New("session validator: issuer required")
	ErrMissingSessionToken      = errors.New("session validator: token required")
	ErrInvalidSessionToken      = errors.New("session validator: invalid token")
	ErrExpiredSessionToken      = errors.New("session validator: token expired")
	ErrMissingSessionSubject    = errors.New("session validator: subject required")
)

// SessionValidatorConfig describes how to validate issued session tokens.
type SessionValidatorConfig struct {
	SigningSecret []byte
	Issuer        string
	Audience      string
	Clock         func() time.Time
}

// SessionValidator validates HS256 session tokens and reconstructs the
// caller's Session from the embedded claims.
type SessionValidator struct {
	signingSecret []byte
	issuer        string
	audience      string
	clock         func() time.Time
}

// NewSessionValidator constructs a validator with the provided configuration.
func NewSessionValidator(cfg SessionValidatorConfig) (*SessionValidator, error) {
	if len(cfg.SigningSecret) == 0 {
		return nil, ErrMissingSessionSigningKey
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		return nil, ErrMissingSessionIssuer
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SessionValidator{
		signingSecret: append([]byte(nil), cfg.SigningSecret...),
		issuer:        issuer,
		audience:      strings.TrimSpace(cfg.Audience),
		clock:         clock,
	}, nil
}

// Validate checks the supplied token and returns the session it encodes.
func (v *SessionValidator) Validate(tokenString string) (*Session, error) {
	token := strings.TrimSpace(tokenString)
	if token == "" {
		return nil, ErrMissingSessionToken
	}

	options := []jwt.ParserOption{
		jwt.WithTimeFunc(v.clock),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.signingSecret, nil
		},
		options...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSessionToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidSessionToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrMissingSessionSubject
	}

	return &Session{
		UserID:      claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}, nil
}
