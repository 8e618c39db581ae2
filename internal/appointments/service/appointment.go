package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	appointmenterrors "clipbook/internal/appointments/errors"
	"clipbook/internal/appointments/events"
	"clipbook/internal/appointments/repository"
	"clipbook/internal/appointments/validator"
	barbererrors "clipbook/internal/barbers/errors"
	barberrepo "clipbook/internal/barbers/repository"
	serviceerrors "clipbook/internal/services/errors"
	servicerepo "clipbook/internal/services/repository"
	"clipbook/pkg/config"
	apperrors "clipbook/pkg/errors"
	"clipbook/pkg/model"
	"clipbook/pkg/sanitizer"
	"clipbook/pkg/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentService interface {
	Book(ctx context.Context, appt *model.Appointment) error
	Availability(ctx context.Context, barberID, date string) ([]string, error)
	GetAll(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, int64, error)
	Cancel(ctx context.Context, id string) error
}

type appointmentService struct {
	repo        repository.AppointmentRepository
	lockRepo    repository.SlotLockRepository
	barberRepo  barberrepo.BarberRepository
	serviceRepo servicerepo.ServiceRepository
	validator   *validator.AppointmentValidator
	events      events.Publisher
	cfg         *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	barberRepo barberrepo.BarberRepository,
	serviceRepo servicerepo.ServiceRepository,
	validator *validator.AppointmentValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:        repo,
		lockRepo:    lockRepo,
		barberRepo:  barberRepo,
		serviceRepo: serviceRepo,
		validator:   validator,
		events:      publisher,
		cfg:         cfg,
	}
}

func (s *appointmentService) Book(ctx context.Context, appt *model.Appointment) error {
	s.sanitize(appt)
	s.applyDefaults(appt)

	if err := s.validate(appt); err != nil {
		return err
	}

	if _, err := s.resolveBarber(ctx, appt.BarberID); err != nil {
		return err
	}
	if _, err := s.resolveService(ctx, appt.ServiceID); err != nil {
		return err
	}

	// Acquire advisory lock to serialize concurrent attempts on one slot
	lockID, err := s.acquireSlotLock(ctx, appt.BarberID, appt.Date, appt.Time)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		taken, err := s.repo.ExistsScheduled(sessCtx, appt.BarberID, appt.Date, appt.Time)
		if err != nil {
			return apperrors.Internal("Failed to check slot occupancy", err)
		}
		if taken {
			return apperrors.Conflict("Time slot is already booked")
		}
		if err := s.repo.Create(sessCtx, appt); err != nil {
			// The unique index on (barber_id, date, time | scheduled) is
			// the backstop behind the lock and the in-transaction check.
			if mongo.IsDuplicateKeyError(err) {
				return apperrors.Conflict("Time slot is already booked")
			}
			return apperrors.Internal("Failed to create appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book appointment",
			"barber_id", appt.BarberID,
			"date", appt.Date,
			"time", appt.Time,
			"error", err,
		)
		return err
	}

	s.events.AppointmentScheduled(ctx, appt)

	s.cfg.Log.Info("Appointment booked successfully",
		"id", appt.ID,
		"barber_id", appt.BarberID,
		"service_id", appt.ServiceID,
		"date", appt.Date,
		"time", appt.Time,
	)
	return nil
}

func (s *appointmentService) Availability(ctx context.Context, barberID, date string) ([]string, error) {
	if barberID == "" {
		return nil, apperrors.InvalidInput("barber_id query parameter is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.Validation("date must be in YYYY-MM-DD format", map[string]any{
			"date": date,
		})
	}

	barber, err := s.resolveBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	// The window is validated at barber creation, but records predating
	// that check may still carry a bad one; treat those as a day with no
	// bookable slots instead of failing the read.
	start, errStart := timeslot.Parse(barber.StartTime)
	end, errEnd := timeslot.Parse(barber.EndTime)
	if errStart != nil || errEnd != nil {
		s.cfg.Log.Warn("Barber has unparseable working window",
			"barber_id", barberID,
			"start_time", barber.StartTime,
			"end_time", barber.EndTime,
		)
		return []string{}, nil
	}

	sequence := timeslot.Sequence(start, end, barber.SlotMinutes)

	booked, err := s.repo.FindScheduledTimes(ctx, barberID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load scheduled times",
			"barber_id", barberID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to compute availability", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	slots := make([]string, 0, len(sequence))
	for _, c := range sequence {
		if _, occupied := taken[c.String()]; !occupied {
			slots = append(slots, c.String())
		}
	}

	s.cfg.Log.Debug("Availability computed",
		"barber_id", barberID,
		"date", date,
		"total_slots", len(sequence),
		"free_slots", len(slots),
	)
	return slots, nil
}

func (s *appointmentService) GetAll(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, barberID, date)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindAll(ctx, barberID, date, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments",
				"barber_id", barberID,
				"date", date,
				"error", errFind,
			)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	prior, err := s.repo.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, appointmenterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmenterrors.ErrInvalidID) {
			return apperrors.InvalidID(id)
		}
		s.cfg.Log.Error("Failed to cancel appointment",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to cancel appointment", err)
	}

	// Re-cancelling is idempotent success, but only the first transition
	// emits an event.
	if prior.Status == model.StatusCancelled {
		s.cfg.Log.Debug("Appointment was already cancelled", "id", id)
		return nil
	}

	prior.Status = model.StatusCancelled
	s.events.AppointmentCancelled(ctx, prior)

	s.cfg.Log.Info("Appointment cancelled successfully",
		"id", id,
		"barber_id", prior.BarberID,
		"date", prior.Date,
		"time", prior.Time,
	)
	return nil
}

// --- Helpers ---

func (s *appointmentService) sanitize(appt *model.Appointment) {
	appt.BarberID = strings.TrimSpace(appt.BarberID)
	appt.ServiceID = strings.TrimSpace(appt.ServiceID)
	appt.CustomerName = sanitizer.NormalizeName(appt.CustomerName)
	appt.CustomerPhone = sanitizer.NormalizePhone(appt.CustomerPhone)
	appt.Date = sanitizer.TrimAndNormalize(appt.Date)
	appt.Time = sanitizer.TrimAndNormalize(appt.Time)
	appt.Notes = sanitizer.NormalizeNotes(appt.Notes)
}

// applyDefaults pins the server-owned fields: a booking always enters
// the system scheduled, with a storage-generated id.
func (s *appointmentService) applyDefaults(appt *model.Appointment) {
	appt.ID = ""
	appt.Status = model.StatusScheduled
	appt.UpdatedAt = nil
}

func (s *appointmentService) validate(appt *model.Appointment) error {
	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

func (s *appointmentService) resolveBarber(ctx context.Context, id string) (*model.Barber, error) {
	barber, err := s.barberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, barbererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Barber", id)
		}
		if errors.Is(err, barbererrors.ErrInvalidID) {
			return nil, apperrors.InvalidID(id)
		}
		return nil, apperrors.Internal("Failed to resolve barber", err)
	}
	return barber, nil
}

func (s *appointmentService) resolveService(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Service", id)
		}
		if errors.Is(err, serviceerrors.ErrInvalidID) {
			return nil, apperrors.InvalidID(id)
		}
		return nil, apperrors.Internal("Failed to resolve service", err)
	}
	return svc, nil
}

// acquireSlotLock creates an advisory lock to prevent concurrent booking creation
// Returns the lock ID if successful, or conflict error if lock already exists
func (s *appointmentService) acquireSlotLock(ctx context.Context, barberID, date, timeOfDay string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%s", barberID, date, timeOfDay)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
