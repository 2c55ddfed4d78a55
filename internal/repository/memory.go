package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// MemoryUserRepository is an in-process UserRepository used in tests and when
// no database is configured.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[domain.ID]domain.User
	err   error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[domain.ID]domain.User)}
}

// WithError makes every subsequent call fail with a storage failure wrapping err.
func (m *MemoryUserRepository) WithError(err error) *MemoryUserRepository {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MemoryUserRepository) failure() error {
	if m.err == nil {
		return nil
	}
	return apperrors.NewStorageFailure(m.err)
}

func (m *MemoryUserRepository) Save(_ context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(); err != nil {
		return nil, err
	}
	if _, exists := m.users[user.ID]; exists {
		return nil, apperrors.NewStorageFailure(errDuplicateKey)
	}
	m.users[user.ID] = user
	return &user, nil
}

func (m *MemoryUserRepository) FindByID(_ context.Context, id domain.ID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.failure(); err != nil {
		return nil, err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *MemoryUserRepository) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.failure(); err != nil {
		return nil, err
	}
	for _, user := range m.users {
		if user.Email == email && !user.Deleted {
			return &user, nil
		}
	}
	return nil, nil
}

func (m *MemoryUserRepository) SoftDelete(_ context.Context, id domain.ID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(); err != nil {
		return nil, err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	now := domain.Now()
	user.Deleted = true
	user.DeletedAt = &now
	user.UpdatedAt = now
	m.users[id] = user
	return &user, nil
}

func (m *MemoryUserRepository) Update(_ context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(); err != nil {
		return nil, err
	}
	if _, ok := m.users[user.ID]; !ok {
		return nil, nil
	}
	user.UpdatedAt = domain.Now()
	m.users[user.ID] = user
	return &user, nil
}

// MemoryCustomerServiceRepository is an in-process CustomerServiceRepository.
type MemoryCustomerServiceRepository struct {
	mu       sync.RWMutex
	services map[domain.ID]domain.CustomerService
}

func NewMemoryCustomerServiceRepository() *MemoryCustomerServiceRepository {
	return &MemoryCustomerServiceRepository{services: make(map[domain.ID]domain.CustomerService)}
}

func (m *MemoryCustomerServiceRepository) Save(_ context.Context, service domain.CustomerService) (*domain.CustomerService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.services[service.ID]; exists {
		return nil, apperrors.NewStorageFailure(errDuplicateKey)
	}
	m.services[service.ID] = service
	return &service, nil
}

func (m *MemoryCustomerServiceRepository) FindByID(_ context.Context, id domain.ID) (*domain.CustomerService, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	service, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	return &service, nil
}

func (m *MemoryCustomerServiceRepository) FindByOwner(_ context.Context, owner domain.ID) ([]domain.CustomerService, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CustomerService
	for _, service := range m.services {
		if service.OwnerID == owner && !service.Deleted {
			out = append(out, service)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Time().Before(out[j].CreatedAt.Time())
	})
	return out, nil
}

func (m *MemoryCustomerServiceRepository) SoftDelete(_ context.Context, id domain.ID) (*domain.CustomerService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	service, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	now := domain.Now()
	service.Deleted = true
	service.DeletedAt = &now
	service.UpdatedAt = now
	m.services[id] = service
	return &service, nil
}

func (m *MemoryCustomerServiceRepository) Update(_ context.Context, service domain.CustomerService) (*domain.CustomerService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[service.ID]; !ok {
		return nil, nil
	}
	service.UpdatedAt = domain.Now()
	m.services[service.ID] = service
	return &service, nil
}
