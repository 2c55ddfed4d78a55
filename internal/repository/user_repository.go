package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// UserRepository defines persistence access for users. Lookups return a nil
// user and a nil error when nothing matches.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	SoftDelete(ctx context.Context, id domain.ID) (*domain.User, error)
	Update(ctx context.Context, user domain.User) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password, deleted, created_at, updated_at, deleted_at`

func (r *userRepository) Save(ctx context.Context, user domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (id, name, email, password, deleted, created_at, updated_at, deleted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query,
		user.ID.String(),
		user.Name.String(),
		user.Email.String(),
		user.Password.String(),
		user.Deleted,
		user.CreatedAt.Time(),
		user.UpdatedAt.Time(),
		optionalTime(user.DeletedAt),
	))
}

func (r *userRepository) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id.String()))
}

func (r *userRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1 AND NOT deleted`
	return scanUser(r.pool.QueryRow(ctx, query, email.String()))
}

func (r *userRepository) SoftDelete(ctx context.Context, id domain.ID) (*domain.User, error) {
	const query = `
        UPDATE users SET deleted=TRUE, deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1
        RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, id.String()))
}

func (r *userRepository) Update(ctx context.Context, user domain.User) (*domain.User, error) {
	const query = `
        UPDATE users SET name=$1, email=$2, password=$3, deleted=$4, deleted_at=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query,
		user.Name.String(),
		user.Email.String(),
		user.Password.String(),
		user.Deleted,
		optionalTime(user.DeletedAt),
		user.ID.String(),
	))
}

type userRow struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.Password,
		&ur.Deleted,
		&ur.CreatedAt,
		&ur.UpdatedAt,
		&ur.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	user, err := ur.toDomain()
	if err != nil {
		return nil, corruptRow("users", ur.ID, err)
	}
	return &user, nil
}

// toDomain rehydrates the row through the scalar factories.
func (ur userRow) toDomain() (domain.User, error) {
	id, err := domain.ParseID(ur.ID)
	if err != nil {
		return domain.User{}, err
	}
	name, err := domain.NewName(ur.Name)
	if err != nil {
		return domain.User{}, err
	}
	email, err := domain.NewEmail(ur.Email)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  domain.PasswordFromHash(ur.Password),
		Deleted:   ur.Deleted,
		CreatedAt: domain.DateTimeFrom(ur.CreatedAt),
		UpdatedAt: domain.DateTimeFrom(ur.UpdatedAt),
		DeletedAt: optionalDateTime(ur.DeletedAt),
	}, nil
}

func optionalTime(dt *domain.DateTime) *time.Time {
	if dt == nil {
		return nil
	}
	t := dt.Time()
	return &t
}

func optionalDateTime(t *time.Time) *domain.DateTime {
	if t == nil {
		return nil
	}
	dt := domain.DateTimeFrom(*t)
	return &dt
}

func corruptRow(table, id string, cause error) error {
	return apperrors.New(apperrors.KindStorageFailure, "corrupt-row", "stored record failed validation").
		WithArgs(map[string]string{"table": table, "id": id}).
		WithCause(cause)
}

var errDuplicateKey = errors.New("duplicate key")
