package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	defaultJWKSCacheTTL = 10 * time.Minute
	issuerGoogle        = "https://accounts.google.com"
	issuerGoogleLegacy  = "accounts.google.com"
)

var (
	// ErrInvalidVerifierConfig reports unusable GoogleVerifier configuration.
	ErrInvalidVerifierConfig = errors.New("auth: invalid google verifier config")

	errMissingIDToken       = errors.New("id token must not be empty")
	errMissingKeyIdentifier = errors.New("token missing key identifier")
	errSigningKeyNotFound   = errors.New("signing key not found in JWKS")
	errUntrustedIssuer      = errors.New("token issuer not allowed")
	errMissingTokenSubject  = errors.New("token missing subject claim")
)

// GoogleVerifierConfig bundles configuration for verifying Google ID tokens.
type GoogleVerifierConfig struct {
	Audience   string
	JWKSURL    string
	HTTPClient *http.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger
	Clock      func() time.Time
}

// GoogleVerifier verifies Google-issued ID tokens offline against cached JWKS
// material and extracts the profile claims the dashboard displays.
type GoogleVerifier struct {
	audience   string
	jwksURL    string
	httpClient *http.Client
	clock      func() time.Time
	logger     *zap.Logger
	cache      *jwksCache
}

// NewGoogleVerifier constructs a verifier with validated configuration.
func NewGoogleVerifier(cfg GoogleVerifierConfig) (*GoogleVerifier, error) {
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		return nil, fmt.Errorf("%w: audience required", ErrInvalidVerifierConfig)
	}
	jwksURL := strings.TrimSpace(cfg.JWKSURL)
	if jwksURL == "" {
		return nil, fmt.Errorf("%w: jwks url required", ErrInvalidVerifierConfig)
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultJWKSCacheTTL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &GoogleVerifier{
		audience:   audience,
		jwksURL:    jwksURL,
		httpClient: httpClient,
		clock:      clock,
		logger:     logger,
		cache:      &jwksCache{ttl: cacheTTL},
	}, nil
}

type googleIDClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Verify validates the provided ID token and returns the caller identity,
// including the profile claims (email, name, picture) used by the dashboard.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Identity{}, errMissingIDToken
	}

	claims := &googleIDClaims{}
	token, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			keyID, _ := token.Header["kid"].(string)
			if keyID == "" {
				return nil, errMissingKeyIdentifier
			}
			return v.lookupKey(ctx, keyID)
		},
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(v.clock),
	)
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("token signature invalid")
	}

	if claims.Issuer != issuerGoogle && claims.Issuer != issuerGoogleLegacy {
		return Identity{}, errUntrustedIssuer
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, errMissingTokenSubject
	}

	return Identity{
		Subject:     claims.Subject,
		Email:       strings.TrimSpace(claims.Email),
		DisplayName: strings.TrimSpace(claims.Name),
		AvatarURL:   strings.TrimSpace(claims.Picture),
	}, nil
}

func (v *GoogleVerifier) lookupKey(ctx context.Context, keyID string) (*rsa.PublicKey, error) {
	now := v.clock()
	if key := v.cache.get(keyID, now); key != nil {
		return key, nil
	}

	if err := v.refreshKeys(ctx, now); err != nil {
		return nil, err
	}

	if key := v.cache.get(keyID, now); key != nil {
		return key, nil
	}
	return nil, errSigningKeyNotFound
}

func (v *GoogleVerifier) refreshKeys(ctx context.Context, fetchedAt time.Time) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}

	response, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks request returned status %d", response.StatusCode)
	}

	var document jwksDocument
	if err := json.NewDecoder(response.Body).Decode(&document); err != nil {
		return err
	}

	keys := make(map[string]*rsa.PublicKey, len(document.Keys))
	for _, key := range document.Keys {
		if key.KeyType != "RSA" || key.Use != "sig" {
			continue
		}
		publicKey, err := key.toRSAPublicKey()
		if err != nil {
			v.logger.Debug("skipping jwk", zap.String("kid", key.KeyID), zap.Error(err))
			continue
		}
		keys[key.KeyID] = publicKey
	}
	if len(keys) == 0 {
		return errors.New("jwks document contained no usable keys")
	}

	v.cache.store(keys, fetchedAt)
	return nil
}

type jwksCache struct {
	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
	ttl       time.Duration
}

func (c *jwksCache) get(keyID string, now time.Time) *rsa.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.keys == nil || now.After(c.expiresAt) {
		return nil
	}
	return c.keys[keyID]
}

func (c *jwksCache) store(keys map[string]*rsa.PublicKey, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = keys
	c.expiresAt = now.Add(c.ttl)
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	KeyType string `json:"kty"`
	KeyID   string `json:"kid"`
	Use     string `json:"use"`
	Modulus string `json:"n"`
	Exp     string `json:"e"`
}

func (k jwk) toRSAPublicKey() (*rsa.PublicKey, error) {
	modulusBytes, err := base64.RawURLEncoding.DecodeString(k.Modulus)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus encoding: %w", err)
	}
	exponentBytes, err := base64.RawURLEncoding.DecodeString(k.Exp)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent encoding: %w", err)
	}
	if len(exponentBytes) == 0 {
		return nil, errors.New("missing exponent bytes")
	}

	exponent := 0
	for _, b := range exponentBytes {
		exponent = exponent<<8 + int(b)
	}
	if exponent == 0 {
		return nil, errors.New("invalid exponent value")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulusBytes),
		E: exponent,
	}, nil
}
