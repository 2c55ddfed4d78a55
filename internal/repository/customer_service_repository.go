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

// CustomerServiceRepository defines persistence access for listings. Lookups
// return nil and a nil error when nothing matches.
type CustomerServiceRepository interface {
	Save(ctx context.Context, service domain.CustomerService) (*domain.CustomerService, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.CustomerService, error)
	FindByOwner(ctx context.Context, owner domain.ID) ([]domain.CustomerService, error)
	SoftDelete(ctx context.Context, id domain.ID) (*domain.CustomerService, error)
	Update(ctx context.Context, service domain.CustomerService) (*domain.CustomerService, error)
}

type customerServiceRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerServiceRepository returns a Postgres-backed implementation.
func NewCustomerServiceRepository(pool *pgxpool.Pool) CustomerServiceRepository {
	return &customerServiceRepository{pool: pool}
}

const customerServiceColumns = `id, user_id, name, description, latitude, longitude, phone, phone_region,
        website, tags, categories, deleted, created_at, updated_at, deleted_at`

func (r *customerServiceRepository) Save(ctx context.Context, service domain.CustomerService) (*domain.CustomerService, error) {
	const query = `
        INSERT INTO customer_services (id, user_id, name, description, latitude, longitude, phone, phone_region,
            website, tags, categories, deleted, created_at, updated_at, deleted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING ` + customerServiceColumns

	var saved *domain.CustomerService
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row, err := scanCustomerServiceRow(tx.QueryRow(ctx, query,
			service.ID.String(),
			service.OwnerID.String(),
			service.Name.String(),
			service.Description.String(),
			service.Location.Lat(),
			service.Location.Lon(),
			service.Phone.String(),
			string(service.Phone.Country()),
			optionalURL(service.Website),
			nonNilTags(service.Tags),
			nonNilCategories(service.Categories),
			service.Deleted,
			service.CreatedAt.Time(),
			service.UpdatedAt.Time(),
			optionalTime(service.DeletedAt),
		))
		if err != nil {
			return err
		}
		if err := replacePhotos(ctx, tx, service.ID, service.Photos); err != nil {
			return err
		}
		saved, err = r.hydrate(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, storageError(err)
	}
	return saved, nil
}

func (r *customerServiceRepository) FindByID(ctx context.Context, id domain.ID) (*domain.CustomerService, error) {
	const query = `SELECT ` + customerServiceColumns + ` FROM customer_services WHERE id=$1`

	row, err := scanCustomerServiceRow(r.pool.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	service, err := r.hydrate(ctx, r.pool, row)
	if err != nil {
		return nil, storageError(err)
	}
	return service, nil
}

func (r *customerServiceRepository) FindByOwner(ctx context.Context, owner domain.ID) ([]domain.CustomerService, error) {
	const query = `SELECT ` + customerServiceColumns + `
        FROM customer_services WHERE user_id=$1 AND NOT deleted
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, owner.String())
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (customerServiceRow, error) {
		return scanCustomerServiceRow(row)
	})
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	services := make([]domain.CustomerService, 0, len(collected))
	for _, row := range collected {
		service, err := r.hydrate(ctx, r.pool, row)
		if err != nil {
			return nil, storageError(err)
		}
		services = append(services, *service)
	}
	return services, nil
}

func (r *customerServiceRepository) SoftDelete(ctx context.Context, id domain.ID) (*domain.CustomerService, error) {
	const query = `
        UPDATE customer_services SET deleted=TRUE, deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1
        RETURNING ` + customerServiceColumns

	row, err := scanCustomerServiceRow(r.pool.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	service, err := r.hydrate(ctx, r.pool, row)
	if err != nil {
		return nil, storageError(err)
	}
	return service, nil
}

func (r *customerServiceRepository) Update(ctx context.Context, service domain.CustomerService) (*domain.CustomerService, error) {
	const query = `
        UPDATE customer_services SET name=$1, description=$2, latitude=$3, longitude=$4, phone=$5,
            phone_region=$6, website=$7, tags=$8, categories=$9, deleted=$10, deleted_at=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING ` + customerServiceColumns

	var updated *domain.CustomerService
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row, err := scanCustomerServiceRow(tx.QueryRow(ctx, query,
			service.Name.String(),
			service.Description.String(),
			service.Location.Lat(),
			service.Location.Lon(),
			service.Phone.String(),
			string(service.Phone.Country()),
			optionalURL(service.Website),
			nonNilTags(service.Tags),
			nonNilCategories(service.Categories),
			service.Deleted,
			optionalTime(service.DeletedAt),
			service.ID.String(),
		))
		if err != nil {
			return err
		}
		if err := replacePhotos(ctx, tx, service.ID, service.Photos); err != nil {
			return err
		}
		updated, err = r.hydrate(ctx, tx, row)
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return updated, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *customerServiceRepository) hydrate(ctx context.Context, q querier, row customerServiceRow) (*domain.CustomerService, error) {
	photos, err := loadPhotos(ctx, q, row.ID)
	if err != nil {
		return nil, err
	}
	row.Photos = photos
	service, err := row.toDomain()
	if err != nil {
		return nil, corruptRow("customer_services", row.ID, err)
	}
	return &service, nil
}

type photoRow struct {
	URL   string
	Title *string
}

func loadPhotos(ctx context.Context, q querier, serviceID string) ([]photoRow, error) {
	const query = `
        SELECT url, title FROM customer_service_photos
        WHERE service_id=$1 ORDER BY position`

	rows, err := q.Query(ctx, query, serviceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[photoRow])
}

func replacePhotos(ctx context.Context, tx pgx.Tx, serviceID domain.ID, photos []domain.Photo) error {
	if _, err := tx.Exec(ctx, `DELETE FROM customer_service_photos WHERE service_id=$1`, serviceID.String()); err != nil {
		return err
	}
	if len(photos) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, photo := range photos {
		var title *string
		if photo.Title != "" {
			t := photo.Title
			title = &t
		}
		batch.Queue(`INSERT INTO customer_service_photos (service_id, url, title, position) VALUES ($1, $2, $3, $4)`,
			serviceID.String(), photo.URL.String(), title, i)
	}
	return tx.SendBatch(ctx, batch).Close()
}

type customerServiceRow struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	Phone       string
	PhoneRegion string
	Website     *string
	Tags        map[string]string
	Categories  []string
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
	Photos      []photoRow
}

func scanCustomerServiceRow(row pgx.Row) (customerServiceRow, error) {
	var cr customerServiceRow
	err := row.Scan(
		&cr.ID,
		&cr.OwnerID,
		&cr.Name,
		&cr.Description,
		&cr.Latitude,
		&cr.Longitude,
		&cr.Phone,
		&cr.PhoneRegion,
		&cr.Website,
		&cr.Tags,
		&cr.Categories,
		&cr.Deleted,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&cr.DeletedAt,
	)
	return cr, err
}

// toDomain rehydrates the row through the scalar factories.
func (cr customerServiceRow) toDomain() (domain.CustomerService, error) {
	id, err := domain.ParseID(cr.ID)
	if err != nil {
		return domain.CustomerService{}, err
	}
	owner, err := domain.ParseID(cr.OwnerID)
	if err != nil {
		return domain.CustomerService{}, err
	}
	name, err := domain.NewName(cr.Name)
	if err != nil {
		return domain.CustomerService{}, err
	}
	description, err := domain.NewDescription(cr.Description)
	if err != nil {
		return domain.CustomerService{}, err
	}
	location, err := domain.NewGeoPoint(cr.Latitude, cr.Longitude)
	if err != nil {
		return domain.CustomerService{}, err
	}
	phone, err := domain.PhoneFromStored(cr.Phone, domain.PhoneCountry(cr.PhoneRegion))
	if err != nil {
		return domain.CustomerService{}, err
	}

	service := domain.CustomerService{
		ID:          id,
		OwnerID:     owner,
		Name:        name,
		Description: description,
		Location:    location,
		Phone:       phone,
		Tags:        nonNilTags(cr.Tags),
		Categories:  cr.Categories,
		Deleted:     cr.Deleted,
		CreatedAt:   domain.DateTimeFrom(cr.CreatedAt),
		UpdatedAt:   domain.DateTimeFrom(cr.UpdatedAt),
		DeletedAt:   optionalDateTime(cr.DeletedAt),
	}
	if cr.Website != nil {
		website, err := domain.NewURL(*cr.Website)
		if err != nil {
			return domain.CustomerService{}, err
		}
		service.Website = &website
	}
	for _, p := range cr.Photos {
		title := ""
		if p.Title != nil {
			title = *p.Title
		}
		photo, err := domain.NewPhoto(p.URL, title)
		if err != nil {
			return domain.CustomerService{}, err
		}
		service.Photos = append(service.Photos, photo)
	}
	return service, nil
}

func optionalURL(u *domain.URL) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}

func nonNilTags(tags map[string]string) map[string]string {
	if tags == nil {
		return map[string]string{}
	}
	return tags
}

func nonNilCategories(categories []string) []string {
	if categories == nil {
		return []string{}
	}
	return categories
}

// storageError keeps errors already classified by the domain and wraps the rest.
func storageError(err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	return apperrors.NewStorageFailure(err)
}
