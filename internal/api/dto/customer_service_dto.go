package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
)

// LocationPayload is a latitude/longitude pair in decimal degrees.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PhotoPayload references an image of the listing.
type PhotoPayload struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// CreateCustomerServiceRequest payload.
type CreateCustomerServiceRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    LocationPayload   `json:"location"`
	Phone       string            `json:"phone"`
	Website     string            `json:"website"`
	Photos      []PhotoPayload    `json:"photos"`
	Tags        map[string]string `json:"tags"`
	Categories  []string          `json:"categories"`
}

// ToInput maps the payload onto the use case input.
func (r CreateCustomerServiceRequest) ToInput() service.CreateCustomerServiceInput {
	return service.CreateCustomerServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Latitude:    r.Location.Latitude,
		Longitude:   r.Location.Longitude,
		Phone:       r.Phone,
		Website:     r.Website,
		Photos:      photoInputs(r.Photos),
		Tags:        r.Tags,
		Categories:  r.Categories,
	}
}

// UpdateCustomerServiceRequest is a merge-patch for a listing.
type UpdateCustomerServiceRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Location    *LocationPayload   `json:"location"`
	Phone       *string            `json:"phone"`
	Website     *string            `json:"website"`
	Photos      *[]PhotoPayload    `json:"photos"`
	Tags        *map[string]string `json:"tags"`
	Categories  *[]string          `json:"categories"`
}

// ToPatch validates every supplied field and builds the domain patch for id.
func (r UpdateCustomerServiceRequest) ToPatch(id domain.ID) (domain.CustomerServicePatch, error) {
	patch := domain.CustomerServicePatch{ID: id, Tags: r.Tags, Categories: r.Categories}
	if r.Name != nil {
		name, err := domain.NewName(*r.Name)
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Name = &name
	}
	if r.Description != nil {
		description, err := domain.NewDescription(*r.Description)
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Description = &description
	}
	if r.Location != nil {
		location, err := domain.NewGeoPoint(r.Location.Latitude, r.Location.Longitude)
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Location = &location
	}
	if r.Phone != nil {
		phone, err := domain.NewPhone(*r.Phone)
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Phone = &phone
	}
	if r.Website != nil {
		website, err := domain.NewURL(*r.Website)
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Website = &website
	}
	if r.Photos != nil {
		photos, err := service.BuildPhotos(photoInputs(*r.Photos))
		if err != nil {
			return domain.CustomerServicePatch{}, err
		}
		patch.Photos = &photos
	}
	return patch, nil
}

// CustomerServiceResponse is the public view of a listing.
type CustomerServiceResponse struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    LocationPayload   `json:"location"`
	Phone       string            `json:"phone"`
	PhoneRegion string            `json:"phone_region"`
	Website     *string           `json:"website,omitempty"`
	Photos      []PhotoPayload    `json:"photos"`
	Tags        map[string]string `json:"tags"`
	Categories  []string          `json:"categories"`
	Deleted     bool              `json:"deleted"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   *time.Time        `json:"deleted_at,omitempty"`
}

// NewCustomerServiceResponse maps a domain listing.
func NewCustomerServiceResponse(s *domain.CustomerService) CustomerServiceResponse {
	photos := make([]PhotoPayload, 0, len(s.Photos))
	for _, p := range s.Photos {
		photos = append(photos, PhotoPayload{URL: p.URL.String(), Title: p.Title})
	}
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := s.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	var website *string
	if s.Website != nil {
		w := s.Website.String()
		website = &w
	}
	return CustomerServiceResponse{
		ID:          s.ID.String(),
		OwnerID:     s.OwnerID.String(),
		Name:        s.Name.String(),
		Description: s.Description.String(),
		Location:    LocationPayload{Latitude: s.Location.Lat(), Longitude: s.Location.Lon()},
		Phone:       s.Phone.String(),
		PhoneRegion: string(s.Phone.Country()),
		Website:     website,
		Photos:      photos,
		Tags:        tags,
		Categories:  categories,
		Deleted:     s.Deleted,
		CreatedAt:   s.CreatedAt.Time(),
		UpdatedAt:   s.UpdatedAt.Time(),
		DeletedAt:   timePtr(s.DeletedAt),
	}
}

// NewCustomerServiceList maps a slice of listings.
func NewCustomerServiceList(in []domain.CustomerService) []CustomerServiceResponse {
	out := make([]CustomerServiceResponse, 0, len(in))
	for i := range in {
		out = append(out, NewCustomerServiceResponse(&in[i]))
	}
	return out
}

func photoInputs(in []PhotoPayload) []service.PhotoInput {
	out := make([]service.PhotoInput, 0, len(in))
	for _, p := range in {
		out = append(out, service.PhotoInput{URL: p.URL, Title: p.Title})
	}
	return out
}
