package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *bool:
			*p = f.values[i].(bool)
		case *time.Time:
			*p = f.values[i].(time.Time)
		case **time.Time:
			*p, _ = f.values[i].(*time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestScanUser(t *testing.T) {
	id := domain.NewID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	digest := domain.HashPassword("pw").String()

	user, err := scanUser(fakeRow{values: []any{
		id.String(), "Ada", "ada@example.com", digest, false, created, created, (*time.Time)(nil),
	}})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Ada", user.Name.String())
	assert.True(t, user.Password.Matches("pw"))
	assert.Equal(t, created, user.CreatedAt.Time())
	assert.Nil(t, user.DeletedAt)
}

func TestScanUser_NoRows(t *testing.T) {
	user, err := scanUser(fakeRow{err: pgx.ErrNoRows})
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestScanUser_StorageFailure(t *testing.T) {
	_, err := scanUser(fakeRow{err: errors.New("connection reset")})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.KindStorageFailure, de.Kind)
	assert.Equal(t, "storage-failure", de.Code)
}

func TestScanUser_CorruptRow(t *testing.T) {
	now := time.Now()
	_, err := scanUser(fakeRow{values: []any{
		domain.NewID().String(), "Ada", "not-an-email", "x", false, now, now, (*time.Time)(nil),
	}})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.KindStorageFailure, de.Kind)
	assert.Equal(t, "corrupt-row", de.Code)
	assert.ErrorIs(t, err, apperrors.NewValidation("invalid-email", ""))
}

func TestCustomerServiceRow_ToDomain(t *testing.T) {
	website := "https://bakery.example.com"
	title := "front"
	deletedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	row := customerServiceRow{
		ID:          domain.NewID().String(),
		OwnerID:     domain.NewID().String(),
		Name:        "Padaria",
		Description: "bread",
		Latitude:    -23.5,
		Longitude:   -46.6,
		Phone:       "+5511987654321",
		PhoneRegion: "BR",
		Website:     &website,
		Categories:  []string{"food"},
		Deleted:     true,
		DeletedAt:   &deletedAt,
		Photos:      []photoRow{{URL: "https://cdn.example.com/1.png", Title: &title}, {URL: "https://cdn.example.com/2.png"}},
	}

	service, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, row.ID, service.ID.String())
	assert.Equal(t, row.OwnerID, service.OwnerID.String())
	assert.Equal(t, "+5511987654321", service.Phone.String())
	assert.Equal(t, domain.PhoneCountryBR, service.Phone.Country())
	assert.Equal(t, website, service.Website.String())
	assert.Equal(t, map[string]string{}, service.Tags)
	require.Len(t, service.Photos, 2)
	assert.Equal(t, "front", service.Photos[0].Title)
	assert.Equal(t, "", service.Photos[1].Title)
	require.NotNil(t, service.DeletedAt)
	assert.Equal(t, deletedAt, service.DeletedAt.Time())
}

func TestCustomerServiceRow_PhoneRegionSurvivesRoundTrip(t *testing.T) {
	for _, raw := range []string{"415-867-5309", "11987654321", "+442071838750"} {
		t.Run(raw, func(t *testing.T) {
			phone, err := domain.NewPhone(raw)
			require.NoError(t, err)
			row := customerServiceRow{
				ID:          domain.NewID().String(),
				OwnerID:     domain.NewID().String(),
				Name:        "Padaria",
				Phone:       phone.String(),
				PhoneRegion: string(phone.Country()),
			}

			service, err := row.toDomain()
			require.NoError(t, err)
			assert.Equal(t, phone, service.Phone)
		})
	}
}

func TestCustomerServiceRow_ToDomainRejectsUnknownPhoneRegion(t *testing.T) {
	row := customerServiceRow{
		ID:          domain.NewID().String(),
		OwnerID:     domain.NewID().String(),
		Name:        "Padaria",
		Phone:       "+14158675309",
		PhoneRegion: "XX",
	}

	_, err := row.toDomain()
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "invalid-phone", de.Code)
}

func TestCustomerServiceRow_ToDomainRejectsInvalidLocation(t *testing.T) {
	row := customerServiceRow{
		ID:          domain.NewID().String(),
		OwnerID:     domain.NewID().String(),
		Name:        "Padaria",
		Latitude:    91,
		Longitude:   0,
		Phone:       "+5511987654321",
		PhoneRegion: "BR",
	}

	_, err := row.toDomain()
	assert.ErrorIs(t, err, apperrors.NewValidation("invalid-latitude-longitude", ""))
}

func TestStorageError_KeepsClassifiedErrors(t *testing.T) {
	classified := corruptRow("users", "1", errors.New("bad"))
	assert.Same(t, classified, storageError(classified))

	wrapped := storageError(errors.New("deadlock"))
	assert.Equal(t, apperrors.KindStorageFailure, apperrors.ToDomainError(wrapped).Kind)
}
