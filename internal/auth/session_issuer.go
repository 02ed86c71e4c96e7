package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTTL = 12 * time.Hour

var (
	errMissingSigningSecret = errors.New("signing secret must be provided")
	errMissingIdentity      = errors.New("identity subject must be provided")
)

// SessionIssuerConfig configures dashboard session token issuance.
type SessionIssuerConfig struct {
	SigningSecret []byte
	Issuer        string
	Audience      string
	TokenTTL      time.Duration
	Clock         func() time.Time
}

// SessionIssuer mints HS256 session tokens for verified identities. The token
// embeds the profile claims the dashboard renders, so consumers never need a
// second lookup to greet the caller.
type SessionIssuer struct {
	signingSecret []byte
	issuer        string
	audience      string
	tokenTTL      time.Duration
	clock         func() time.Time
}

// NewSessionIssuer constructs a SessionIssuer with sane defaults.
func NewSessionIssuer(cfg SessionIssuerConfig) *SessionIssuer {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SessionIssuer{
		signingSecret: append([]byte(nil), cfg.SigningSecret...),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		tokenTTL:      ttl,
		clock:         clock,
	}
}

type sessionClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Issue produces a signed session token and its expiry in seconds.
func (i *SessionIssuer) Issue(_ context.Context, identity Identity) (string, int64, error) {
	if len(i.signingSecret) == 0 {
		return "", 0, errMissingSigningSecret
	}
	if identity.Subject == "" {
		return "", 0, errMissingIdentity
	}

	now := i.clock().UTC()
	expiresAt := now.Add(i.tokenTTL)

	claims := sessionClaims{
		Email:   identity.Email,
		Name:    identity.DisplayName,
		Picture: identity.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			Issuer:    i.issuer,
			Audience:  []string{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingSecret)
	if err != nil {
		return "", 0, fmt.Errorf("sign session token: %w", err)
	}

	return signed, int64(expiresAt.Sub(now).Seconds()), nil
}
