package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookly/database"
	serviceRepo "bookly/database/repository/service"
	"bookly/models"

	"github.com/google/uuid"
)

var _ serviceRepo.ServiceRepository = (*ServiceStore)(nil)

type ServiceStore struct {
	mu       sync.RWMutex
	services map[string]models.Service
}

func NewServiceStore() *ServiceStore {
	return &ServiceStore{services: make(map[string]models.Service)}
}

func (s *ServiceStore) Create(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now().UTC()
	}
	s.services[svc.ID] = *svc
	return nil
}

func (s *ServiceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &svc, nil
}

func (s *ServiceStore) ListByProvider(_ context.Context, providerID string) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.ProviderID == providerID {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
