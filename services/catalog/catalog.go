package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookly/database"
	"bookly/database/repository"
	"bookly/models"
	"bookly/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxDurationMinutes keeps a service inside one day.
const maxDurationMinutes = 24 * 60

// CatalogService manages the services providers offer.
type CatalogService interface {
	CreateService(ctx context.Context, actor models.Actor, req models.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error)
}

type DefaultCatalogService struct {
	Repo   repository.ServiceRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) (*DefaultCatalogService, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("catalog service initialization error: repository or logger is nil")
	}
	return &DefaultCatalogService{
		Repo:   repo,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, actor models.Actor, req models.CreateServiceRequest) (*models.Service, error) {
	providerID, err := owningProvider(actor, req.ProviderID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Validation("name", "is required")
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "" {
		kind = models.ServiceKindAppointment
	}
	duration := req.DurationMinutes
	switch kind {
	case models.ServiceKindAppointment:
		if duration <= 0 || duration > maxDurationMinutes {
			return nil, errs.Validation("durationMinutes", "must be between 1 and %d", maxDurationMinutes)
		}
	case models.ServiceKindProduct:
		duration = 0
	default:
		return nil, errs.Validation("kind", "must be %q or %q", models.ServiceKindAppointment, models.ServiceKindProduct)
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		ProviderID:      providerID,
		Name:            name,
		Kind:            kind,
		DurationMinutes: duration,
		CreatedAt:       s.Now(),
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.Logger.Info("Service created",
		zap.String("serviceID", svc.ID),
		zap.String("providerID", providerID),
		zap.String("kind", kind),
	)
	return svc, nil
}

func owningProvider(actor models.Actor, requested string) (string, error) {
	switch actor.Role {
	case models.RoleProvider:
		if requested != "" && requested != actor.ID {
			return "", errs.Authorization("providers can only create their own services")
		}
		return actor.ID, nil
	case models.RoleAdmin:
		if requested == "" {
			return "", errs.Validation("providerId", "is required")
		}
		return requested, nil
	}
	return "", errs.Authorization("only providers can create services")
}

func (s *DefaultCatalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, serviceID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errs.NotFound("service %s not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error) {
	if providerID == "" {
		return nil, errs.Validation("providerId", "is required")
	}
	list, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return list, nil
}
