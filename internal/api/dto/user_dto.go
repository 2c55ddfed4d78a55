package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToInput maps the payload onto the use case input.
func (r UserRegisterRequest) ToInput() service.CreateUserInput {
	return service.CreateUserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// UserLoginRequest payload for sign-in.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is a merge-patch: omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ToPatch validates every supplied field and builds the domain patch for id.
func (r UpdateUserRequest) ToPatch(id domain.ID) (domain.UserPatch, error) {
	patch := domain.UserPatch{ID: id}
	if r.Name != nil {
		name, err := domain.NewName(*r.Name)
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.Name = &name
	}
	if r.Email != nil {
		email, err := domain.NewEmail(*r.Email)
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.Email = &email
	}
	if r.Password != nil {
		password := domain.HashPassword(*r.Password)
		patch.Password = &password
	}
	return patch, nil
}

// UserResponse is the public view of a user. The password digest is never exposed.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Deleted   bool       `json:"deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name.String(),
		Email:     u.Email.String(),
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt.Time(),
		UpdatedAt: u.UpdatedAt.Time(),
		DeletedAt: timePtr(u.DeletedAt),
	}
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAuthResponse maps an issued token.
func NewAuthResponse(t auth.AuthToken) AuthResponse {
	return AuthResponse{Token: t.Token, ExpiresAt: t.ExpiresAt()}
}

func timePtr(d *domain.DateTime) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
