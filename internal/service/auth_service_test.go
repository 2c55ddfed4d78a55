package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

type authFixture struct {
	svc     *AuthService
	tokens  *auth.TokenManager
	revoked *auth.MemoryRevocationList
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tokens := auth.NewTokenManager(auth.NewSecret("test-secret"), time.Hour, "directory-app")
	revoked := auth.NewMemoryRevocationList()
	svc := NewAuthService(AuthDependencies{
		Users:    users,
		Accounts: NewUserService(users, nil, nil, nil),
		Tokens:   tokens,
		Revoked:  revoked,
	})
	return authFixture{svc: svc, tokens: tokens, revoked: revoked}
}

func TestAuthService_SignUpIssuesVerifiableToken(t *testing.T) {
	f := newAuthFixture(t)

	user, token, err := f.svc.SignUp(context.Background(), CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	claims, err := f.tokens.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestAuthService_SignIn(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.SignUp(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	user, token, err := f.svc.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "ada@example.com", user.Email.String())

	cases := map[string][2]string{
		"wrong password": {"ada@example.com", "nope"},
		"unknown email":  {"grace@example.com", "pw"},
		"malformed":      {"ada", "pw"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.svc.SignIn(ctx, c[0], c[1])
			requireKindCode(t, err, apperrors.KindUnauthorized, "invalid-credentials")
		})
	}
}

func TestAuthService_SignOutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, token, err := f.svc.SignUp(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, &token.Claims))

	revoked, err := f.revoked.IsRevoked(ctx, token.Claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_SignOutWithoutTokenID(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.SignOut(context.Background(), &auth.Claims{})
	requireKindCode(t, err, apperrors.KindUnauthorized, "unauthorized")
}
