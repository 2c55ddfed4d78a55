package domain

import (
	"maps"
	"slices"
)

// CustomerService is a directory listing owned by a user.
type CustomerService struct {
	ID          ID
	OwnerID     ID
	Name        Name
	Description Description
	Location    GeoPoint
	Phone       Phone
	Website     *URL
	Photos      []Photo
	Tags        map[string]string
	Categories  []string
	Deleted     bool
	CreatedAt   DateTime
	UpdatedAt   DateTime
	DeletedAt   *DateTime
}

// NewCustomerService builds a fresh listing for owner.
func NewCustomerService(owner ID, name Name, description Description, location GeoPoint, phone Phone) CustomerService {
	now := Now()
	return CustomerService{
		ID:          NewID(),
		OwnerID:     owner,
		Name:        name,
		Description: description,
		Location:    location,
		Phone:       phone,
		Tags:        map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CustomerServicePatch is a merge-patch for a listing: nil fields keep the persisted value.
type CustomerServicePatch struct {
	ID          ID
	Name        *Name
	Description *Description
	Location    *GeoPoint
	Phone       *Phone
	Website     *URL
	Photos      *[]Photo
	Tags        *map[string]string
	Categories  *[]string
	Deleted     *bool
}

// MergeCustomerService applies patch over persisted. The result shares no
// slices or maps with either input.
func MergeCustomerService(persisted CustomerService, patch CustomerServicePatch) (CustomerService, error) {
	if patch.ID != persisted.ID {
		return CustomerService{}, idMismatch(persisted.ID, patch.ID)
	}
	merged := persisted
	merged.Name = valueOr(patch.Name, persisted.Name)
	merged.Description = valueOr(patch.Description, persisted.Description)
	merged.Location = valueOr(patch.Location, persisted.Location)
	merged.Phone = valueOr(patch.Phone, persisted.Phone)
	merged.Deleted = valueOr(patch.Deleted, persisted.Deleted)
	merged.Photos = slices.Clone(valueOr(patch.Photos, persisted.Photos))
	merged.Tags = maps.Clone(valueOr(patch.Tags, persisted.Tags))
	merged.Categories = slices.Clone(valueOr(patch.Categories, persisted.Categories))

	if patch.Website != nil {
		website := *patch.Website
		merged.Website = &website
	} else if persisted.Website != nil {
		website := *persisted.Website
		merged.Website = &website
	}
	merged.DeletedAt = deletionStamp(merged.Deleted, persisted.DeletedAt)
	return merged, nil
}
