package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// DefaultTokenTTL is used when no positive lifetime is configured.
const DefaultTokenTTL = 24 * time.Hour

// Claims describes JWT payload.
type Claims struct {
	jwt.RegisteredClaims
}

// SubjectID parses the subject back into an identifier.
func (c *Claims) SubjectID() (domain.ID, error) {
	return domain.ParseID(c.Subject)
}

// AuthToken is a signed token together with the claims it carries.
type AuthToken struct {
	Token  string
	Claims Claims
}

// ExpiresAt returns the expiry instant.
func (t AuthToken) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret   *Secret
	ttl      time.Duration
	audience string
	now      func() time.Time
}

// NewTokenManager builds a new manager bound to secret.
func NewTokenManager(secret *Secret, ttl time.Duration, audience string) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: secret, ttl: ttl, audience: audience, now: time.Now}
}

// Issue builds and signs a token for subject.
func (tm *TokenManager) Issue(subject domain.ID) (AuthToken, error) {
	now := tm.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
	}
	if tm.audience != "" {
		claims.Audience = jwt.ClaimStrings{tm.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret.Bytes())
	if err != nil {
		return AuthToken{}, apperrors.NewInternalError(err)
	}
	return AuthToken{Token: signed, Claims: claims}, nil
}

// Verify checks signature, algorithm, audience and expiry together. Every
// failure is reported as the same invalid-token validation error.
func (tm *TokenManager) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(tm.now),
	}
	if tm.audience != "" {
		opts = append(opts, jwt.WithAudience(tm.audience))
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return tm.secret.Bytes(), nil
	}, opts...)
	if err != nil {
		return nil, invalidToken(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, invalidToken(nil)
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

func invalidToken(cause error) error {
	return apperrors.NewValidation("invalid-token", "Invalid token").WithCause(cause)
}
