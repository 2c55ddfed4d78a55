package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// CreateUserInput carries unvalidated registration fields.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserService implements the user account use cases.
type UserService struct {
	users   repository.UserRepository
	metrics *observability.Metrics
	events  publisher
}

// NewUserService constructs the service. dispatcher and metrics may be nil.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		metrics: metrics,
		events:  publisher{dispatcher: dispatcher, logger: loggerOrNop(logger)},
	}
}

// Create validates input and registers a new user.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	name, err := domain.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, apperrors.NewValidation("invalid-password", "Password must not be empty")
	}
	if err := s.ensureEmailAvailable(ctx, email, domain.ID{}); err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, domain.NewUser(name, email, domain.HashPassword(in.Password)))
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.metrics.IncUsersCreated()
	s.events.publish(ctx, events.NewEvent(events.EventUserRegistered, saved.ID.String(), saved.ID.String(), nil))
	return saved, nil
}

// Get returns an active user. Missing and soft-deleted users are both NotFound.
func (s *UserService) Get(ctx context.Context, id domain.ID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.Deleted {
		return nil, userNotFound(id)
	}
	return user, nil
}

// FindByEmail returns the active user registered under email.
func (s *UserService) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || user.Deleted {
		return nil, apperrors.NewNotFound("user-not-found", "User not found").
			WithArgs(map[string]string{"email": email.String()})
	}
	return user, nil
}

// Update loads the user, merges patch over it and persists the result.
func (s *UserService) Update(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	persisted, err := s.Get(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil && *patch.Email != persisted.Email {
		if err := s.ensureEmailAvailable(ctx, *patch.Email, persisted.ID); err != nil {
			return nil, err
		}
	}

	merged, err := domain.MergeUser(*persisted, patch)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.Update(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if updated == nil {
		return nil, userNotFound(patch.ID)
	}
	s.events.publish(ctx, events.NewEvent(events.EventUserUpdated, updated.ID.String(), updated.ID.String(),
		events.UserChangedPayload{Fields: changedUserFields(patch)}))
	return updated, nil
}

// Delete soft-deletes the user and returns the final record.
func (s *UserService) Delete(ctx context.Context, id domain.ID) (*domain.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	deleted, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if deleted == nil {
		return nil, userNotFound(id)
	}
	s.events.publish(ctx, events.NewEvent(events.EventUserDeleted, id.String(), id.String(), nil))
	return deleted, nil
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email domain.Email, self domain.ID) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil && !existing.Deleted && existing.ID != self {
		return apperrors.NewUnprocessableEntity("email-already-registered", "Email already registered").
			WithArgs(map[string]string{"email": email.String()})
	}
	return nil
}

func userNotFound(id domain.ID) error {
	return apperrors.NewNotFound("user-not-found", "User not found").
		WithArgs(map[string]string{"id": id.String()})
}

func changedUserFields(patch domain.UserPatch) []string {
	var fields []string
	if patch.Name != nil {
		fields = append(fields, "name")
	}
	if patch.Email != nil {
		fields = append(fields, "email")
	}
	if patch.Password != nil {
		fields = append(fields, "password")
	}
	if patch.Deleted != nil {
		fields = append(fields, "deleted")
	}
	return fields
}
