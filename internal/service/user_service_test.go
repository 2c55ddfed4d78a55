package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

type recordingDispatcher struct {
	published []events.Event
	err       error
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return r.err
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.published))
	for _, e := range r.published {
		out = append(out, e.Type)
	}
	return out
}

func newUserService(t *testing.T) (*UserService, *repository.MemoryUserRepository, *recordingDispatcher) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	dispatcher := &recordingDispatcher{}
	return NewUserService(repo, dispatcher, observability.NewMetrics(), nil), repo, dispatcher
}

func requireKindCode(t *testing.T, err error, kind apperrors.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, kind, domainErr.Kind)
	assert.Equal(t, code, domainErr.Code)
}

func TestUserService_Create(t *testing.T) {
	svc, _, dispatcher := newUserService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{Name: " Ada ", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name.String())
	assert.True(t, user.Password.Matches("secret"))
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, dispatcher.types())
}

func TestUserService_Create_RejectsInvalidInput(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Name: "", Email: "ada@example.com", Password: "x"})
	requireKindCode(t, err, apperrors.KindValidation, "invalid-field")

	_, err = svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "not-an-email", Password: "x"})
	requireKindCode(t, err, apperrors.KindValidation, "invalid-email")

	_, err = svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com"})
	requireKindCode(t, err, apperrors.KindValidation, "invalid-password")
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	in := CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"}

	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	requireKindCode(t, err, apperrors.KindUnprocessableEntity, "email-already-registered")
}

func TestUserService_Create_PublishFailureDoesNotFail(t *testing.T) {
	svc, _, dispatcher := newUserService(t)
	dispatcher.err = errors.New("subscriber down")

	_, err := svc.Create(context.Background(), CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	assert.NoError(t, err)
}

func TestUserService_Get(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, domain.NewID())
	requireKindCode(t, err, apperrors.KindNotFound, "user-not-found")

	created, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	byEmail, err := svc.FindByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserService_Update(t *testing.T) {
	svc, _, dispatcher := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	name, err := domain.NewName("Ada Lovelace")
	require.NoError(t, err)
	updated, err := svc.Update(ctx, domain.UserPatch{ID: created.ID, Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", updated.Name.String())
	assert.Equal(t, created.Email, updated.Email)
	assert.True(t, updated.Password.Matches("x"))

	last := dispatcher.published[len(dispatcher.published)-1]
	assert.Equal(t, events.EventUserUpdated, last.Type)
	assert.Equal(t, events.UserChangedPayload{Fields: []string{"name"}}, last.Payload)
}

func TestUserService_Update_EmailTakenByAnotherUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)
	grace, err := svc.Create(ctx, CreateUserInput{Name: "Grace", Email: "grace@example.com", Password: "x"})
	require.NoError(t, err)

	taken, err := domain.NewEmail("ada@example.com")
	require.NoError(t, err)
	_, err = svc.Update(ctx, domain.UserPatch{ID: grace.ID, Email: &taken})
	requireKindCode(t, err, apperrors.KindUnprocessableEntity, "email-already-registered")
}

func TestUserService_Update_Missing(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Update(context.Background(), domain.UserPatch{ID: domain.NewID()})
	requireKindCode(t, err, apperrors.KindNotFound, "user-not-found")
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Deleted)

	_, err = svc.Get(ctx, created.ID)
	requireKindCode(t, err, apperrors.KindNotFound, "user-not-found")

	_, err = svc.Delete(ctx, created.ID)
	requireKindCode(t, err, apperrors.KindNotFound, "user-not-found")

	// The email is free again once its owner is deleted.
	_, err = svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "y"})
	assert.NoError(t, err)
}

func TestUserService_StorageFailure(t *testing.T) {
	repo := repository.NewMemoryUserRepository().WithError(errors.New("connection refused"))
	svc := NewUserService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), domain.NewID())
	requireKindCode(t, err, apperrors.KindStorageFailure, "storage-failure")
}
