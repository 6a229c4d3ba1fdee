// AngelaMos | 2026
// tokens.go

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/opsboard/opsboard/internal/config"
	"github.com/opsboard/opsboard/internal/core"
)

// TokenManager issues and validates the stateless access tokens. The
// signing secret and all timing parameters are fixed at construction; no
// global state is consulted afterwards.
type TokenManager struct {
	key       jwk.Key
	algorithm jwa.SignatureAlgorithm
	config    config.AuthConfig
}

func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	algorithm, ok := jwa.LookupSignatureAlgorithm(cfg.Algorithm)
	if !ok {
		return nil, fmt.Errorf("unknown signing algorithm: %s", cfg.Algorithm)
	}

	if setErr := key.Set(jwk.AlgorithmKey, algorithm); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:       key,
		algorithm: algorithm,
		config:    cfg,
	}, nil
}

// Claims is what a validated token asserts. Role is deliberately absent:
// it is re-fetched from the credential store on every request.
type Claims struct {
	UserID         string
	OrganizationID *string
	ExpiresAt      time.Time
}

// Issue mints a token for the subject. Every call carries a fresh
// issued-at and a unique jti, so concurrent logins for the same subject
// yield distinct tokens.
func (m *TokenManager) Issue(
	userID string,
	organizationID *string,
) (string, error) {
	now := time.Now()

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Subject(userID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(m.config.TokenLifetime))

	if organizationID != nil {
		builder = builder.Claim("org_id", *organizationID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(m.algorithm, m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Validate is a pure function of the token string and the signing
// secret: signature, issuer, and expiration (with the configured skew
// tolerance) are checked, nothing is looked up.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(m.algorithm, m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAcceptableSkew(m.config.ClockSkew),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("validate token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("validate token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"validate token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &Claims{UserID: subject}

	var orgID string
	if err := token.Get("org_id", &orgID); err == nil && orgID != "" {
		claims.OrganizationID = &orgID
	}

	if expiration, ok := token.Expiration(); ok {
		claims.ExpiresAt = expiration
	}

	return claims, nil
}

func (m *TokenManager) TokenLifetime() time.Duration {
	return m.config.TokenLifetime
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
