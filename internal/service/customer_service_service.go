package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// PhotoInput is an unvalidated photo reference.
type PhotoInput struct {
	URL   string
	Title string
}

// CreateCustomerServiceInput carries unvalidated listing fields.
type CreateCustomerServiceInput struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	Phone       string
	Website     string
	Photos      []PhotoInput
	Tags        map[string]string
	Categories  []string
}

// CustomerServiceService implements the directory listing use cases.
type CustomerServiceService struct {
	services repository.CustomerServiceRepository
	users    repository.UserRepository
	events   publisher
}

// NewCustomerServiceService constructs the service.
func NewCustomerServiceService(services repository.CustomerServiceRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CustomerServiceService {
	return &CustomerServiceService{
		services: services,
		users:    users,
		events:   publisher{dispatcher: dispatcher, logger: loggerOrNop(logger)},
	}
}

// Create validates input and stores a new listing owned by owner.
func (s *CustomerServiceService) Create(ctx context.Context, owner domain.ID, in CreateCustomerServiceInput) (*domain.CustomerService, error) {
	user, err := s.users.FindByID(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if user == nil || user.Deleted {
		return nil, userNotFound(owner)
	}

	listing, err := buildCustomerService(owner, in)
	if err != nil {
		return nil, err
	}
	saved, err := s.services.Save(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("save customer service: %w", err)
	}
	s.events.publish(ctx, events.NewEvent(events.EventCustomerServiceCreated, saved.ID.String(), owner.String(),
		events.CustomerServicePayload{OwnerID: owner.String(), Name: saved.Name.String()}))
	return saved, nil
}

// Get returns an active listing.
func (s *CustomerServiceService) Get(ctx context.Context, id domain.ID) (*domain.CustomerService, error) {
	listing, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer service: %w", err)
	}
	if listing == nil || listing.Deleted {
		return nil, apperrors.NewNotFound("customer-service-not-found", "Customer service not found").
			WithArgs(map[string]string{"id": id.String()})
	}
	return listing, nil
}

// ListByOwner returns the active listings of owner, oldest first.
func (s *CustomerServiceService) ListByOwner(ctx context.Context, owner domain.ID) ([]domain.CustomerService, error) {
	listings, err := s.services.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list customer services: %w", err)
	}
	if listings == nil {
		listings = []domain.CustomerService{}
	}
	return listings, nil
}

// Update merges patch over the listing. Only the owner may update it.
func (s *CustomerServiceService) Update(ctx context.Context, actor domain.ID, patch domain.CustomerServicePatch) (*domain.CustomerService, error) {
	persisted, err := s.ownedBy(ctx, actor, patch.ID)
	if err != nil {
		return nil, err
	}
	merged, err := domain.MergeCustomerService(*persisted, patch)
	if err != nil {
		return nil, err
	}
	updated, err := s.services.Update(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update customer service: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("customer-service-not-found", "Customer service not found").
			WithArgs(map[string]string{"id": patch.ID.String()})
	}
	s.events.publish(ctx, events.NewEvent(events.EventCustomerServiceUpdated, updated.ID.String(), actor.String(),
		events.CustomerServicePayload{OwnerID: updated.OwnerID.String(), Name: updated.Name.String()}))
	return updated, nil
}

// Delete soft-deletes the listing. Only the owner may delete it.
func (s *CustomerServiceService) Delete(ctx context.Context, actor, id domain.ID) (*domain.CustomerService, error) {
	if _, err := s.ownedBy(ctx, actor, id); err != nil {
		return nil, err
	}
	deleted, err := s.services.SoftDelete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete customer service: %w", err)
	}
	if deleted == nil {
		return nil, apperrors.NewNotFound("customer-service-not-found", "Customer service not found").
			WithArgs(map[string]string{"id": id.String()})
	}
	s.events.publish(ctx, events.NewEvent(events.EventCustomerServiceDeleted, id.String(), actor.String(),
		events.CustomerServicePayload{OwnerID: deleted.OwnerID.String(), Name: deleted.Name.String()}))
	return deleted, nil
}

func (s *CustomerServiceService) ownedBy(ctx context.Context, actor, id domain.ID) (*domain.CustomerService, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actor {
		return nil, apperrors.NewUnauthorized("not-owner", "Only the owner may modify this customer service").
			WithArgs(map[string]string{"id": id.String()})
	}
	return listing, nil
}

func buildCustomerService(owner domain.ID, in CreateCustomerServiceInput) (domain.CustomerService, error) {
	name, err := domain.NewName(in.Name)
	if err != nil {
		return domain.CustomerService{}, err
	}
	description, err := domain.NewDescription(in.Description)
	if err != nil {
		return domain.CustomerService{}, err
	}
	location, err := domain.NewGeoPoint(in.Latitude, in.Longitude)
	if err != nil {
		return domain.CustomerService{}, err
	}
	phone, err := domain.NewPhone(in.Phone)
	if err != nil {
		return domain.CustomerService{}, err
	}
	photos, err := BuildPhotos(in.Photos)
	if err != nil {
		return domain.CustomerService{}, err
	}

	listing := domain.NewCustomerService(owner, name, description, location, phone)
	if in.Website != "" {
		website, err := domain.NewURL(in.Website)
		if err != nil {
			return domain.CustomerService{}, err
		}
		listing.Website = &website
	}
	listing.Photos = photos
	if in.Tags != nil {
		listing.Tags = in.Tags
	}
	listing.Categories = in.Categories
	return listing, nil
}

// BuildPhotos validates every photo reference in order.
func BuildPhotos(in []PhotoInput) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0, len(in))
	for _, p := range in {
		photo, err := domain.NewPhoto(p.URL, p.Title)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}
