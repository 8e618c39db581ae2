package service

import (
	"context"
	"errors"

	barbererrors "clipbook/internal/barbers/errors"
	"clipbook/internal/barbers/repository"
	"clipbook/internal/barbers/validator"
	"clipbook/pkg/config"
	apperrors "clipbook/pkg/errors"
	"clipbook/pkg/model"
	"clipbook/pkg/sanitizer"
)

type BarberService interface {
	Create(ctx context.Context, b *model.Barber) error
	GetByID(ctx context.Context, id string) (*model.Barber, error)
	GetAll(ctx context.Context) ([]*model.Barber, error)
	Count(ctx context.Context) (int64, error)
}

type barberService struct {
	repo      repository.BarberRepository
	validator *validator.BarberValidator
	cfg       *config.Config
}

func NewBarberService(
	repo repository.BarberRepository,
	validator *validator.BarberValidator,
	cfg *config.Config,
) BarberService {
	return &barberService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *barberService) Create(ctx context.Context, b *model.Barber) error {
	s.sanitize(b)
	s.applyDefaults(b)

	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Barber validation failed",
			"name", b.Name,
			"error", err,
		)
		return apperrors.Validation("Barber validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.cfg.Log.Error("Failed to create barber",
			"name", b.Name,
			"error", err,
		)
		return apperrors.Internal("Failed to create barber", err)
	}

	s.cfg.Log.Info("Barber created successfully",
		"id", b.ID,
		"name", b.Name,
	)
	return nil
}

func (s *barberService) GetByID(ctx context.Context, id string) (*model.Barber, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Barber ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, barbererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Barber", id)
		}
		if errors.Is(err, barbererrors.ErrInvalidID) {
			return nil, apperrors.InvalidID(id)
		}
		s.cfg.Log.Error("Failed to get barber by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve barber", err)
	}

	return b, nil
}

func (s *barberService) GetAll(ctx context.Context) ([]*model.Barber, error) {
	barbers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to get all barbers", "error", err)
		return nil, apperrors.Internal("Failed to retrieve barbers", err)
	}
	return barbers, nil
}

func (s *barberService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count barbers", "error", err)
		return 0, apperrors.Internal("Failed to count barbers", err)
	}
	return count, nil
}

func (s *barberService) sanitize(b *model.Barber) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Specialties = sanitizer.NormalizeSpecialties(b.Specialties)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.PhotoURL = sanitizer.NormalizeURL(b.PhotoURL)
	b.WorkingDays = sanitizer.NormalizeWorkingDays(b.WorkingDays)
	b.StartTime = sanitizer.TrimAndNormalize(b.StartTime)
	b.EndTime = sanitizer.TrimAndNormalize(b.EndTime)
}

func (s *barberService) applyDefaults(b *model.Barber) {
	if b.StartTime == "" {
		b.StartTime = s.cfg.DefaultWorkdayStart
	}
	if b.EndTime == "" {
		b.EndTime = s.cfg.DefaultWorkdayEnd
	}
	if b.SlotMinutes == 0 {
		b.SlotMinutes = s.cfg.DefaultSlotMinutes
	}
	if len(b.WorkingDays) == 0 {
		b.WorkingDays = s.cfg.DefaultWorkingDays
	}
}
