package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	appointmenterrors "clipbook/internal/appointments/errors"
	"clipbook/internal/appointments/validator"
	barbererrors "clipbook/internal/barbers/errors"
	serviceerrors "clipbook/internal/services/errors"
	"clipbook/pkg/config"
	mongotx "clipbook/pkg/db/mongo"
	apperrors "clipbook/pkg/errors"
	"clipbook/pkg/logger"
	"clipbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testBarberID  = "507f1f77bcf86cd799439011"
	testServiceID = "507f1f77bcf86cd799439012"
)

// ────────────────────────────────────────────────
// Mock repositories for testing
// ────────────────────────────────────────────────

type mockAppointmentRepository struct {
	createFunc             func(ctx context.Context, appt *model.Appointment) error
	existsScheduledFunc    func(ctx context.Context, barberID, date, timeOfDay string) (bool, error)
	findScheduledTimesFunc func(ctx context.Context, barberID, date string) ([]string, error)
	cancelFunc             func(ctx context.Context, id string) (*model.Appointment, error)
	findAllFunc            func(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, error)
	countFunc              func(ctx context.Context, barberID, date string) (int64, error)
	executeTransactionFunc func(ctx context.Context, fn mongotx.TransactionFunc) error

	createCalls int
}

func (m *mockAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, appt)
	}
	appt.ID = "68a0f1e2d3c4b5a697881122"
	return nil
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, barberID, date, limit, offset)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context, barberID, date string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, barberID, date)
	}
	return 0, nil
}

func (m *mockAppointmentRepository) ExistsScheduled(ctx context.Context, barberID, date, timeOfDay string) (bool, error) {
	if m.existsScheduledFunc != nil {
		return m.existsScheduledFunc(ctx, barberID, date, timeOfDay)
	}
	return false, nil
}

func (m *mockAppointmentRepository) FindScheduledTimes(ctx context.Context, barberID, date string) ([]string, error) {
	if m.findScheduledTimesFunc != nil {
		return m.findScheduledTimesFunc(ctx, barberID, date)
	}
	return []string{}, nil
}

func (m *mockAppointmentRepository) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", appointmenterrors.ErrNotFound, id)
}

func (m *mockAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	// Execute the function with a fake session context
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)

	createdLockIDs []string
	deletedLockIDs []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	m.createdLockIDs = append(m.createdLockIDs, lock.ID)
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deletedLockIDs = append(m.deletedLockIDs, lockID)
	return nil
}

type mockBarberRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Barber, error)
}

func (m *mockBarberRepository) Create(ctx context.Context, b *model.Barber) error {
	return nil
}

func (m *mockBarberRepository) FindByID(ctx context.Context, id string) (*model.Barber, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Barber{
		ID:          id,
		Name:        "Test Barber",
		StartTime:   "09:00",
		EndTime:     "20:00",
		SlotMinutes: 30,
	}, nil
}

func (m *mockBarberRepository) FindAll(ctx context.Context) ([]*model.Barber, error) {
	return []*model.Barber{}, nil
}

func (m *mockBarberRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockServiceRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Service, error)
}

func (m *mockServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	return nil
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Service{
		ID:              id,
		Title:           "Haircut",
		DurationMinutes: 30,
		Price:           25.0,
	}, nil
}

func (m *mockServiceRepository) FindAll(ctx context.Context) ([]*model.Service, error) {
	return []*model.Service{}, nil
}

func (m *mockServiceRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type capturedEvent struct {
	eventType string
	appt      *model.Appointment
}

type mockPublisher struct {
	events []capturedEvent
}

func (m *mockPublisher) AppointmentScheduled(ctx context.Context, appt *model.Appointment) {
	m.events = append(m.events, capturedEvent{eventType: "scheduled", appt: appt})
}

func (m *mockPublisher) AppointmentCancelled(ctx context.Context, appt *model.Appointment) {
	m.events = append(m.events, capturedEvent{eventType: "cancelled", appt: appt})
}

func (m *mockPublisher) Close() error { return nil }

// ────────────────────────────────────────────────
// Test fixtures
// ────────────────────────────────────────────────

func newTestConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		SlotLockTTL:  10 * time.Second,
	}
}

type bookingFixture struct {
	service     *appointmentService
	repo        *mockAppointmentRepository
	lockRepo    *mockSlotLockRepository
	barberRepo  *mockBarberRepository
	serviceRepo *mockServiceRepository
	publisher   *mockPublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	cfg := newTestConfig()
	f := &bookingFixture{
		repo:        &mockAppointmentRepository{},
		lockRepo:    &mockSlotLockRepository{},
		barberRepo:  &mockBarberRepository{},
		serviceRepo: &mockServiceRepository{},
		publisher:   &mockPublisher{},
	}
	f.service = &appointmentService{
		repo:        f.repo,
		lockRepo:    f.lockRepo,
		barberRepo:  f.barberRepo,
		serviceRepo: f.serviceRepo,
		validator:   validator.NewAppointmentValidator(cfg.Log),
		events:      f.publisher,
		cfg:         cfg,
	}
	return f
}

func validAppointment() *model.Appointment {
	return &model.Appointment{
		BarberID:      testBarberID,
		ServiceID:     testServiceID,
		CustomerName:  "John Smith",
		CustomerPhone: "+14155550101",
		Date:          "2026-09-01",
		Time:          "09:30",
	}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{
			{Code: 11000, Message: "E11000 duplicate key error"},
		},
	}
}

func assertAppCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", wantCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Errorf("expected code %s, got %s (%v)", wantCode, appErr.Code, appErr)
	}
}

// ────────────────────────────────────────────────
// Tests for Book()
// ────────────────────────────────────────────────

func TestBook_Success(t *testing.T) {
	f := newBookingFixture(t)
	appt := validAppointment()

	if err := f.service.Book(context.Background(), appt); err != nil {
		t.Fatalf("Book() unexpected error: %v", err)
	}

	if appt.Status != model.StatusScheduled {
		t.Errorf("expected status %q, got %q", model.StatusScheduled, appt.Status)
	}
	if appt.ID == "" {
		t.Error("expected generated appointment ID, got empty")
	}
	if f.repo.createCalls != 1 {
		t.Errorf("expected 1 insert, got %d", f.repo.createCalls)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].eventType != "scheduled" {
		t.Errorf("expected one scheduled event, got %+v", f.publisher.events)
	}
}

func TestBook_ClientSuppliedStatusIsOverridden(t *testing.T) {
	f := newBookingFixture(t)
	appt := validAppointment()
	appt.Status = model.StatusCancelled
	appt.ID = "68a0f1e2d3c4b5a697880000"

	if err := f.service.Book(context.Background(), appt); err != nil {
		t.Fatalf("Book() unexpected error: %v", err)
	}

	if appt.Status != model.StatusScheduled {
		t.Errorf("client supplied status should be forced to scheduled, got %q", appt.Status)
	}
}

func TestBook_SlotAlreadyScheduled(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.existsScheduledFunc = func(ctx context.Context, barberID, date, timeOfDay string) (bool, error) {
		return true, nil
	}

	err := f.service.Book(context.Background(), validAppointment())

	assertAppCode(t, err, apperrors.CodeConflict)
	if f.repo.createCalls != 0 {
		t.Errorf("conflicting booking must not insert, got %d inserts", f.repo.createCalls)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("conflicting booking must not publish events, got %+v", f.publisher.events)
	}
}

func TestBook_DuplicateKeyOnInsertIsConflict(t *testing.T) {
	// Two requests can pass the occupancy check before either inserts;
	// the unique partial index turns the loser's insert into a duplicate
	// key error that must surface as a Conflict, not an internal error.
	f := newBookingFixture(t)
	f.repo.createFunc = func(ctx context.Context, appt *model.Appointment) error {
		return duplicateKeyError()
	}

	err := f.service.Book(context.Background(), validAppointment())

	assertAppCode(t, err, apperrors.CodeConflict)
}

func TestBook_SlotLockContention(t *testing.T) {
	f := newBookingFixture(t)
	f.lockRepo.createFunc = func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
		return nil, duplicateKeyError()
	}

	err := f.service.Book(context.Background(), validAppointment())

	assertAppCode(t, err, apperrors.CodeConflict)
	if f.repo.createCalls != 0 {
		t.Errorf("lock contention must not reach the insert, got %d inserts", f.repo.createCalls)
	}
}

func TestBook_LockIsReleasedAfterBooking(t *testing.T) {
	f := newBookingFixture(t)
	appt := validAppointment()

	if err := f.service.Book(context.Background(), appt); err != nil {
		t.Fatalf("Book() unexpected error: %v", err)
	}

	wantLockID := fmt.Sprintf("slot_lock_%s_%s_%s", testBarberID, "2026-09-01", "09:30")
	if len(f.lockRepo.createdLockIDs) != 1 || f.lockRepo.createdLockIDs[0] != wantLockID {
		t.Errorf("expected lock %q acquired, got %v", wantLockID, f.lockRepo.createdLockIDs)
	}
	if len(f.lockRepo.deletedLockIDs) != 1 || f.lockRepo.deletedLockIDs[0] != wantLockID {
		t.Errorf("expected lock %q released, got %v", wantLockID, f.lockRepo.deletedLockIDs)
	}
}

func TestBook_LockIsReleasedOnConflict(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.existsScheduledFunc = func(ctx context.Context, barberID, date, timeOfDay string) (bool, error) {
		return true, nil
	}

	_ = f.service.Book(context.Background(), validAppointment())

	if len(f.lockRepo.deletedLockIDs) != 1 {
		t.Errorf("lock must be released on the conflict path, got deletions %v", f.lockRepo.deletedLockIDs)
	}
}

func TestBook_UnknownBarber(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return nil, fmt.Errorf("%w: %s", barbererrors.ErrNotFound, id)
	}

	err := f.service.Book(context.Background(), validAppointment())

	assertAppCode(t, err, apperrors.CodeNotFound)
	if f.repo.createCalls != 0 {
		t.Errorf("unknown barber must not insert, got %d inserts", f.repo.createCalls)
	}
	if len(f.lockRepo.createdLockIDs) != 0 {
		t.Errorf("unknown barber must not acquire a lock, got %v", f.lockRepo.createdLockIDs)
	}
}

func TestBook_UnknownService(t *testing.T) {
	f := newBookingFixture(t)
	f.serviceRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Service, error) {
		return nil, fmt.Errorf("%w: %s", serviceerrors.ErrNotFound, id)
	}

	err := f.service.Book(context.Background(), validAppointment())

	assertAppCode(t, err, apperrors.CodeNotFound)
	if f.repo.createCalls != 0 {
		t.Errorf("unknown service must not insert, got %d inserts", f.repo.createCalls)
	}
}

func TestBook_MalformedBarberID(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return nil, fmt.Errorf("%w: %s", barbererrors.ErrInvalidID, id)
	}

	appt := validAppointment()
	appt.BarberID = "not-an-object-id"

	err := f.service.Book(context.Background(), appt)

	assertAppCode(t, err, apperrors.CodeInvalidID)
}

func TestBook_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(appt *model.Appointment)
	}{
		{
			name:   "missing customer name",
			mutate: func(a *model.Appointment) { a.CustomerName = "" },
		},
		{
			name:   "single character customer name",
			mutate: func(a *model.Appointment) { a.CustomerName = "J" },
		},
		{
			name:   "phone not E.164",
			mutate: func(a *model.Appointment) { a.CustomerPhone = "not-a-phone" },
		},
		{
			name:   "date with slashes",
			mutate: func(a *model.Appointment) { a.Date = "2026/09/01" },
		},
		{
			name:   "impossible calendar date",
			mutate: func(a *model.Appointment) { a.Date = "2026-13-45" },
		},
		{
			name:   "time without leading zero",
			mutate: func(a *model.Appointment) { a.Time = "9:30" },
		},
		{
			name:   "hour out of range",
			mutate: func(a *model.Appointment) { a.Time = "25:00" },
		},
		{
			name:   "missing barber id",
			mutate: func(a *model.Appointment) { a.BarberID = "" },
		},
		{
			name:   "missing service id",
			mutate: func(a *model.Appointment) { a.ServiceID = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			appt := validAppointment()
			tt.mutate(appt)

			err := f.service.Book(context.Background(), appt)

			assertAppCode(t, err, apperrors.CodeValidation)
			if f.repo.createCalls != 0 {
				t.Errorf("invalid appointment must not insert, got %d inserts", f.repo.createCalls)
			}
		})
	}
}

func TestBook_CancelThenRebookSameSlot(t *testing.T) {
	// A cancelled appointment frees its slot: the stateful fake flips the
	// scheduled flag the way the real collection would.
	f := newBookingFixture(t)

	scheduled := map[string]bool{}
	slotKey := func(barberID, date, timeOfDay string) string {
		return barberID + "|" + date + "|" + timeOfDay
	}

	f.repo.existsScheduledFunc = func(ctx context.Context, barberID, date, timeOfDay string) (bool, error) {
		return scheduled[slotKey(barberID, date, timeOfDay)], nil
	}
	f.repo.createFunc = func(ctx context.Context, appt *model.Appointment) error {
		scheduled[slotKey(appt.BarberID, appt.Date, appt.Time)] = true
		appt.ID = "68a0f1e2d3c4b5a697881122"
		return nil
	}
	f.repo.cancelFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		prior := validAppointment()
		prior.ID = id
		prior.Status = model.StatusScheduled
		scheduled[slotKey(prior.BarberID, prior.Date, prior.Time)] = false
		return prior, nil
	}

	ctx := context.Background()

	first := validAppointment()
	if err := f.service.Book(ctx, first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Double-booking the held slot must fail.
	err := f.service.Book(ctx, validAppointment())
	assertAppCode(t, err, apperrors.CodeConflict)
	if f.repo.createCalls != 1 {
		t.Fatalf("slot must hold exactly 1 appointment after conflicting attempt, inserts = %d", f.repo.createCalls)
	}

	if err := f.service.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The cancelled slot is bookable again.
	if err := f.service.Book(ctx, validAppointment()); err != nil {
		t.Fatalf("rebooking a cancelled slot should succeed, got: %v", err)
	}
	if f.repo.createCalls != 2 {
		t.Errorf("expected 2 inserts after rebooking, got %d", f.repo.createCalls)
	}
}

// ────────────────────────────────────────────────
// Tests for Availability()
// ────────────────────────────────────────────────

func TestAvailability_ExcludesBookedSlot(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return &model.Barber{
			ID:          id,
			Name:        "Test Barber",
			StartTime:   "09:00",
			EndTime:     "11:00",
			SlotMinutes: 30,
		}, nil
	}
	f.repo.findScheduledTimesFunc = func(ctx context.Context, barberID, date string) ([]string, error) {
		return []string{"09:30"}, nil
	}

	slots, err := f.service.Availability(context.Background(), testBarberID, "2026-09-01")
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}

	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("Availability() = %v, want %v", slots, want)
	}
}

func TestAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return &model.Barber{
			ID:          id,
			StartTime:   "09:00",
			EndTime:     "10:00",
			SlotMinutes: 30,
		}, nil
	}

	booked := []string{"09:30"}
	f.repo.findScheduledTimesFunc = func(ctx context.Context, barberID, date string) ([]string, error) {
		return booked, nil
	}
	f.repo.cancelFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		prior := validAppointment()
		prior.ID = id
		prior.Status = model.StatusScheduled
		booked = []string{}
		return prior, nil
	}

	ctx := context.Background()

	slots, err := f.service.Availability(ctx, testBarberID, "2026-09-01")
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(slots, []string{"09:00"}) {
		t.Fatalf("expected booked 09:30 excluded, got %v", slots)
	}

	if err := f.service.Cancel(ctx, "68a0f1e2d3c4b5a697881122"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	slots, err = f.service.Availability(ctx, testBarberID, "2026-09-01")
	if err != nil {
		t.Fatalf("Availability() unexpected error after cancel: %v", err)
	}
	if !reflect.DeepEqual(slots, []string{"09:00", "09:30"}) {
		t.Errorf("expected 09:30 re-included after cancellation, got %v", slots)
	}
}

func TestAvailability_FullyBookedDay(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return &model.Barber{
			ID:          id,
			StartTime:   "09:00",
			EndTime:     "10:00",
			SlotMinutes: 30,
		}, nil
	}
	f.repo.findScheduledTimesFunc = func(ctx context.Context, barberID, date string) ([]string, error) {
		return []string{"09:00", "09:30"}, nil
	}

	slots, err := f.service.Availability(context.Background(), testBarberID, "2026-09-01")
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no free slots, got %v", slots)
	}
	if slots == nil {
		t.Error("expected empty slice, not nil, so the JSON renders [] rather than null")
	}
}

func TestAvailability_UnparseableStoredWindow(t *testing.T) {
	// Documents written before window validation may carry junk; the
	// read path degrades to an empty day instead of erroring.
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return &model.Barber{
			ID:          id,
			StartTime:   "morning",
			EndTime:     "20:00",
			SlotMinutes: 30,
		}, nil
	}

	slots, err := f.service.Availability(context.Background(), testBarberID, "2026-09-01")
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected empty slots for unparseable window, got %v", slots)
	}
}

func TestAvailability_UnknownBarber(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return nil, fmt.Errorf("%w: %s", barbererrors.ErrNotFound, id)
	}

	_, err := f.service.Availability(context.Background(), testBarberID, "2026-09-01")

	assertAppCode(t, err, apperrors.CodeNotFound)
}

func TestAvailability_MalformedBarberID(t *testing.T) {
	f := newBookingFixture(t)
	f.barberRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Barber, error) {
		return nil, fmt.Errorf("%w: %s", barbererrors.ErrInvalidID, id)
	}

	_, err := f.service.Availability(context.Background(), "zzz", "2026-09-01")

	assertAppCode(t, err, apperrors.CodeInvalidID)
}

func TestAvailability_BadQueryInputs(t *testing.T) {
	tests := []struct {
		name     string
		barberID string
		date     string
		wantCode string
	}{
		{"missing barber id", "", "2026-09-01", apperrors.CodeInvalidInput},
		{"missing date", testBarberID, "", apperrors.CodeValidation},
		{"date wrong format", testBarberID, "01-09-2026", apperrors.CodeValidation},
		{"impossible date", testBarberID, "2026-02-30", apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			_, err := f.service.Availability(context.Background(), tt.barberID, tt.date)
			assertAppCode(t, err, tt.wantCode)
		})
	}
}

// ────────────────────────────────────────────────
// Tests for Cancel()
// ────────────────────────────────────────────────

func TestCancel_ScheduledAppointment(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.cancelFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		prior := validAppointment()
		prior.ID = id
		prior.Status = model.StatusScheduled
		return prior, nil
	}

	err := f.service.Cancel(context.Background(), "68a0f1e2d3c4b5a697881122")
	if err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}

	if len(f.publisher.events) != 1 || f.publisher.events[0].eventType != "cancelled" {
		t.Errorf("expected one cancelled event, got %+v", f.publisher.events)
	}
	if f.publisher.events[0].appt.Status != model.StatusCancelled {
		t.Errorf("event should carry the cancelled state, got %q", f.publisher.events[0].appt.Status)
	}
}

func TestCancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.cancelFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		prior := validAppointment()
		prior.ID = id
		prior.Status = model.StatusCancelled
		return prior, nil
	}

	err := f.service.Cancel(context.Background(), "68a0f1e2d3c4b5a697881122")
	if err != nil {
		t.Fatalf("re-cancel should succeed idempotently, got: %v", err)
	}

	if len(f.publisher.events) != 0 {
		t.Errorf("repeat cancellation must not publish an event, got %+v", f.publisher.events)
	}
}

func TestCancel_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	err := f.service.Cancel(context.Background(), "68a0f1e2d3c4b5a697889999")

	assertAppCode(t, err, apperrors.CodeNotFound)
}

func TestCancel_MalformedID(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.cancelFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		return nil, fmt.Errorf("%w: %s", appointmenterrors.ErrInvalidID, id)
	}

	err := f.service.Cancel(context.Background(), "not-an-object-id")

	assertAppCode(t, err, apperrors.CodeInvalidID)
}

func TestCancel_EmptyID(t *testing.T) {
	f := newBookingFixture(t)

	err := f.service.Cancel(context.Background(), "")

	assertAppCode(t, err, apperrors.CodeInvalidInput)
}

// ────────────────────────────────────────────────
// Tests for GetAll()
// ────────────────────────────────────────────────

func TestGetAll_CountAndFindJoined(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.countFunc = func(ctx context.Context, barberID, date string) (int64, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}
	f.repo.findAllFunc = func(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, error) {
		time.Sleep(10 * time.Millisecond)
		return []*model.Appointment{validAppointment()}, nil
	}

	for i := 0; i < 10; i++ {
		appointments, count, err := f.service.GetAll(context.Background(), testBarberID, "2026-09-01", 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(appointments) != 1 {
			t.Errorf("iteration %d: expected 1 appointment, got %d", i, len(appointments))
		}
	}
}

func TestGetAll_FilterPassthrough(t *testing.T) {
	f := newBookingFixture(t)

	var gotBarberID, gotDate string
	f.repo.findAllFunc = func(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, error) {
		gotBarberID = barberID
		gotDate = date
		return []*model.Appointment{}, nil
	}

	_, _, err := f.service.GetAll(context.Background(), testBarberID, "2026-09-01", 10, 0)
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}

	if gotBarberID != testBarberID || gotDate != "2026-09-01" {
		t.Errorf("filter not forwarded, got barber_id=%q date=%q", gotBarberID, gotDate)
	}
}

func TestGetAll_RepositoryError(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.findAllFunc = func(ctx context.Context, barberID, date string, limit int, offset int64) ([]*model.Appointment, error) {
		return nil, errors.New("cursor exhausted")
	}

	_, _, err := f.service.GetAll(context.Background(), "", "", 10, 0)

	assertAppCode(t, err, apperrors.CodeInternal)
}
