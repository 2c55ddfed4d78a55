package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// AuthService coordinates registration, sign-in and sign-out.
type AuthService struct {
	users    repository.UserRepository
	accounts *UserService
	tokens   *auth.TokenManager
	revoked  auth.RevocationList
	metrics  *observability.Metrics
	events   publisher
	now      func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Accounts   *UserService
	Tokens     *auth.TokenManager
	Revoked    auth.RevocationList
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.Users,
		accounts: deps.Accounts,
		tokens:   deps.Tokens,
		revoked:  deps.Revoked,
		metrics:  deps.Metrics,
		events:   publisher{dispatcher: deps.Dispatcher, logger: loggerOrNop(deps.Logger)},
		now:      time.Now,
	}
}

// SignUp registers a user and issues their first token.
func (s *AuthService) SignUp(ctx context.Context, in CreateUserInput) (*domain.User, auth.AuthToken, error) {
	user, err := s.accounts.Create(ctx, in)
	if err != nil {
		return nil, auth.AuthToken{}, err
	}
	token, err := s.issue(user.ID)
	if err != nil {
		return nil, auth.AuthToken{}, err
	}
	return user, token, nil
}

// SignIn authenticates by email and password. Every mismatch yields the same
// invalid-credentials error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, auth.AuthToken, error) {
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, auth.AuthToken{}, invalidCredentials()
	}
	user, err := s.users.FindByEmail(ctx, addr)
	if err != nil {
		return nil, auth.AuthToken{}, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || user.Deleted || !user.Password.Matches(password) {
		return nil, auth.AuthToken{}, invalidCredentials()
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, auth.AuthToken{}, err
	}
	s.events.publish(ctx, events.NewEvent(events.EventUserSignedIn, user.ID.String(), user.ID.String(), nil))
	return user, token, nil
}

// SignOut revokes the token identified by claims until it would have expired.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.NewUnauthorized("unauthorized", "token has no identifier")
	}
	if s.revoked == nil {
		return apperrors.NewServiceFailure("revocation-unavailable", "token revocation is not configured")
	}

	ttl := s.tokens.TTL()
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl > 0 {
		if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
			return apperrors.NewServiceFailure("revocation-failed", "unable to revoke token").WithCause(err)
		}
	}
	s.events.publish(ctx, events.NewEvent(events.EventUserSignedOut, claims.Subject, claims.Subject, nil))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issue(subject domain.ID) (auth.AuthToken, error) {
	token, err := s.tokens.Issue(subject)
	if err != nil {
		return auth.AuthToken{}, err
	}
	s.metrics.IncTokensIssued()
	return token, nil
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("invalid-credentials", "Invalid email or password")
}
