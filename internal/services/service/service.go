package service

import (
	"context"
	"errors"

	serviceerrors "clipbook/internal/services/errors"
	"clipbook/internal/services/repository"
	"clipbook/internal/services/validator"
	"clipbook/pkg/config"
	apperrors "clipbook/pkg/errors"
	"clipbook/pkg/model"
	"clipbook/pkg/sanitizer"
)

type ServiceService interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id string) (*model.Service, error)
	GetAll(ctx context.Context) ([]*model.Service, error)
	Count(ctx context.Context) (int64, error)
}

type serviceService struct {
	repo      repository.ServiceRepository
	validator *validator.ServiceValidator
	cfg       *config.Config
}

func NewServiceService(
	repo repository.ServiceRepository,
	validator *validator.ServiceValidator,
	cfg *config.Config,
) ServiceService {
	return &serviceService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *serviceService) Create(ctx context.Context, svc *model.Service) error {
	s.sanitize(svc)

	if err := s.validator.Validate(svc); err != nil {
		s.cfg.Log.Warn("Service validation failed",
			"title", svc.Title,
			"error", err,
		)
		return apperrors.Validation("Service validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.cfg.Log.Error("Failed to create service",
			"title", svc.Title,
			"error", err,
		)
		return apperrors.Internal("Failed to create service", err)
	}

	s.cfg.Log.Info("Service created successfully",
		"id", svc.ID,
		"title", svc.Title,
	)
	return nil
}

func (s *serviceService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Service", id)
		}
		if errors.Is(err, serviceerrors.ErrInvalidID) {
			return nil, apperrors.InvalidID(id)
		}
		s.cfg.Log.Error("Failed to get service by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve service", err)
	}

	return svc, nil
}

func (s *serviceService) GetAll(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to get all services", "error", err)
		return nil, apperrors.Internal("Failed to retrieve services", err)
	}
	return services, nil
}

func (s *serviceService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count services", "error", err)
		return 0, apperrors.Internal("Failed to count services", err)
	}
	return count, nil
}

func (s *serviceService) sanitize(svc *model.Service) {
	svc.Title = sanitizer.NormalizeTitle(svc.Title)
	svc.Description = sanitizer.NormalizeNotes(svc.Description)
}
