package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "groomify/database/repository/appointment"
	catalogRepo "groomify/database/repository/catalog"
	paymentRepo "groomify/database/repository/payment"
	"groomify/models"
	"groomify/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeApptRepo is an in-memory AppointmentRepository. Its calendar mirrors
// the storage predicate: a reservation lands only when no stored interval
// overlaps it.
type fakeApptRepo struct {
	mu        sync.Mutex
	appts     map[string]*models.Appointment
	calendars map[string][]models.CalendarInterval
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{
		appts:     make(map[string]*models.Appointment),
		calendars: make(map[string][]models.CalendarInterval),
	}
}

func calKey(tenantID, resourceID string) string { return tenantID + "/" + resourceID }

func (r *fakeApptRepo) CreateWithHold(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := calKey(appt.TenantID, appt.ResourceID)
	for _, iv := range r.calendars[key] {
		if models.Overlaps(iv.Start, iv.End, appt.ScheduledAt, appt.EndTime) {
			return appointmentRepo.ErrOverlap
		}
	}
	r.calendars[key] = append(r.calendars[key], models.CalendarInterval{
		AppointmentID: appt.ID,
		Start:         appt.ScheduledAt,
		End:           appt.EndTime,
	})
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeApptRepo) GetByID(_ context.Context, tenantID, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok || appt.TenantID != tenantID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeApptRepo) GetByIDAnyTenant(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeApptRepo) Transition(_ context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error) {
	return r.cas(tenantID, id, fromStatus, toStatus, false)
}

func (r *fakeApptRepo) TransitionAndRelease(_ context.Context, tenantID, id, fromStatus, toStatus string) (*models.Appointment, error) {
	return r.cas(tenantID, id, fromStatus, toStatus, true)
}

func (r *fakeApptRepo) cas(tenantID, id, fromStatus, toStatus string, release bool) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok || (tenantID != "" && appt.TenantID != tenantID) || appt.Status != fromStatus {
		return nil, appointmentRepo.ErrStaleStatus
	}
	appt.Status = toStatus
	appt.UpdatedAt = time.Now().UTC()
	if release {
		key := calKey(appt.TenantID, appt.ResourceID)
		kept := r.calendars[key][:0]
		for _, iv := range r.calendars[key] {
			if iv.AppointmentID != id {
				kept = append(kept, iv)
			}
		}
		r.calendars[key] = kept
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeApptRepo) ListDueForExpiry(_ context.Context, now time.Time, limit int64) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []models.Appointment
	for _, appt := range r.appts {
		if appt.Status == models.StatusPreBooked && !now.Before(appt.ExpiresAt) {
			due = append(due, *appt)
		}
		if int64(len(due)) >= limit {
			break
		}
	}
	return due, nil
}

// fakeCatalog serves fixed pets and services.
type fakeCatalog struct {
	pets     map[string]*models.Pet
	services map[string]*models.Service
}

func (c *fakeCatalog) CreateCustomer(context.Context, *models.Customer) error { return nil }
func (c *fakeCatalog) GetCustomer(context.Context, string, string) (*models.Customer, error) {
	return nil, catalogRepo.ErrNotFound
}
func (c *fakeCatalog) CreatePet(context.Context, *models.Pet) error { return nil }
func (c *fakeCatalog) GetPet(_ context.Context, tenantID, id string) (*models.Pet, error) {
	pet, ok := c.pets[id]
	if !ok || pet.TenantID != tenantID {
		return nil, catalogRepo.ErrNotFound
	}
	return pet, nil
}
func (c *fakeCatalog) CreateService(context.Context, *models.Service) error { return nil }
func (c *fakeCatalog) GetService(_ context.Context, tenantID, id string) (*models.Service, error) {
	svc, ok := c.services[id]
	if !ok || svc.TenantID != tenantID {
		return nil, catalogRepo.ErrNotFound
	}
	return svc, nil
}

// fakePaymentRepo serves one payment per appointment and records refunds.
type fakePaymentRepo struct {
	payments map[string]*models.Payment // keyed by appointment id
	refunds  []*models.Refund
}

func (r *fakePaymentRepo) Create(context.Context, *models.Payment) error         { return nil }
func (r *fakePaymentRepo) Delete(context.Context, string, string) error          { return nil }
func (r *fakePaymentRepo) SetExternalID(context.Context, string, string, string) error { return nil }
func (r *fakePaymentRepo) GetByExternalID(context.Context, string) (*models.Payment, error) {
	return nil, paymentRepo.ErrNotFound
}
func (r *fakePaymentRepo) GetByAppointment(_ context.Context, tenantID, appointmentID string) (*models.Payment, error) {
	p, ok := r.payments[appointmentID]
	if !ok || p.TenantID != tenantID {
		return nil, paymentRepo.ErrNotFound
	}
	return p, nil
}
func (r *fakePaymentRepo) ApplyOutcome(context.Context, string, string, string, bool) (*models.Payment, *models.Appointment, error) {
	return nil, nil, paymentRepo.ErrNotFound
}
func (r *fakePaymentRepo) CreateRefund(_ context.Context, refund *models.Refund) error {
	r.refunds = append(r.refunds, refund)
	return nil
}

// fakeScheduler records scheduled expiries; Fail makes every call error.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []string
	fail      bool
}

func (s *fakeScheduler) ScheduleExpiry(_ context.Context, appointmentID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("queue unavailable")
	}
	s.scheduled = append(s.scheduled, appointmentID)
	return nil
}

const testTenant = "tenant-1"

func newTestService() (*DefaultBookingService, *fakeApptRepo, *fakePaymentRepo, *fakeScheduler) {
	repo := newFakeApptRepo()
	payments := &fakePaymentRepo{payments: make(map[string]*models.Payment)}
	sched := &fakeScheduler{}
	catalog := &fakeCatalog{
		pets: map[string]*models.Pet{
			"pet-1": {ID: "pet-1", TenantID: testTenant, CustomerID: "cust-1", Name: "Rex", Species: models.SpeciesDog},
		},
		services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", TenantID: testTenant, Name: "Full groom", Price: decimal.NewFromInt(200), DurationMinutes: 60, Active: true},
			"svc-off": {ID: "svc-off", TenantID: testTenant, Name: "Retired", Price: decimal.NewFromInt(50), DurationMinutes: 30, Active: false},
		},
	}
	svc := &DefaultBookingService{
		Repo:     repo,
		Catalog:  catalog,
		Payments: payments,
		Expiry:   sched,
		HoldTTL:  10 * time.Minute,
		Refunds:  DefaultRefundPolicy(),
		Logger:   zap.NewNop(),
	}
	return svc, repo, payments, sched
}

func TestPreBook(t *testing.T) {
	svc, _, _, sched := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	if appt.Status != models.StatusPreBooked {
		t.Errorf("status = %s, want %s", appt.Status, models.StatusPreBooked)
	}
	if !appt.EndTime.Equal(scheduledAt.Add(60 * time.Minute)) {
		t.Errorf("end time = %v, want scheduled_at + 60m", appt.EndTime)
	}
	deadline := appt.CreatedAt.Add(10 * time.Minute)
	if !appt.ExpiresAt.Equal(deadline) {
		t.Errorf("expires_at = %v, want %v", appt.ExpiresAt, deadline)
	}
	if appt.CustomerID != "cust-1" {
		t.Errorf("customer id = %s, want the pet's owner", appt.CustomerID)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != appt.ID {
		t.Errorf("expiry not scheduled for %s: %v", appt.ID, sched.scheduled)
	}
}

func TestPreBookValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(24 * time.Hour)

	cases := []struct {
		name string
		in   PreBookInput
	}{
		{"missing resource", PreBookInput{PetID: "pet-1", ServiceID: "svc-1", ScheduledAt: scheduledAt}},
		{"missing time", PreBookInput{PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1"}},
		{"unknown pet", PreBookInput{PetID: "nope", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt}},
		{"unknown service", PreBookInput{PetID: "pet-1", ServiceID: "nope", ResourceID: "groomer-1", ScheduledAt: scheduledAt}},
		{"inactive service", PreBookInput{PetID: "pet-1", ServiceID: "svc-off", ResourceID: "groomer-1", ScheduledAt: scheduledAt}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PreBook(ctx, testTenant, tc.in)
			se, ok := utils.AsServiceError(err)
			if !ok || se.Code != utils.CodeValidation {
				t.Errorf("PreBook error = %v, want %s", err, utils.CodeValidation)
			}
		})
	}
}

func TestPreBookConflict(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)

	if _, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	}); err != nil {
		t.Fatalf("first PreBook: %v", err)
	}

	// Second hold starts halfway through the first one.
	_, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt.Add(30 * time.Minute),
	})
	se, ok := utils.AsServiceError(err)
	if !ok || se.Code != utils.CodeConflictSchedule {
		t.Fatalf("overlapping PreBook error = %v, want %s", err, utils.CodeConflictSchedule)
	}

	// A different resource is free at the same instant.
	if _, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-2", ScheduledAt: scheduledAt,
	}); err != nil {
		t.Errorf("PreBook on free resource: %v", err)
	}

	// Back-to-back on the same resource is legal: [s, s+60) then [s+60, ...).
	if _, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt.Add(60 * time.Minute),
	}); err != nil {
		t.Errorf("adjacent PreBook: %v", err)
	}
}

func TestPreBookConcurrentSameSlot(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(24 * time.Hour)

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.PreBook(ctx, testTenant, PreBookInput{
				PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	won, conflicts := 0, 0
	for _, err := range errs {
		switch se, ok := utils.AsServiceError(err); {
		case err == nil:
			won++
		case ok && se.Code == utils.CodeConflictSchedule:
			conflicts++
		default:
			t.Errorf("unexpected PreBook error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if conflicts != attempts-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, attempts-1)
	}

	repo.mu.Lock()
	intervals := len(repo.calendars[calKey(testTenant, "groomer-1")])
	repo.mu.Unlock()
	if intervals != 1 {
		t.Errorf("stored intervals = %d, want 1", intervals)
	}
}

func TestPreBookSurvivesSchedulerFailure(t *testing.T) {
	svc, _, _, sched := newTestService()
	sched.fail = true

	appt, err := svc.PreBook(context.Background(), testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook with failing scheduler: %v", err)
	}
	if appt.Status != models.StatusPreBooked {
		t.Errorf("status = %s, want %s", appt.Status, models.StatusPreBooked)
	}
}

func TestCancelConfirmedWithRefund(t *testing.T) {
	svc, repo, payments, _ := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(48 * time.Hour)

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}
	if _, err := repo.Transition(ctx, testTenant, appt.ID, models.StatusPreBooked, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	payments.payments[appt.ID] = &models.Payment{
		ID: "pay-1", TenantID: testTenant, AppointmentID: appt.ID,
		Amount: decimal.NewFromInt(100), Status: models.PaymentApproved,
	}

	res, err := svc.Cancel(ctx, testTenant, appt.ID, "customer asked")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Appointment.Status != models.StatusCancelled {
		t.Errorf("status = %s, want %s", res.Appointment.Status, models.StatusCancelled)
	}
	// 48h lead lands in the 90% band.
	if want := decimal.NewFromInt(90); !res.RefundAmount.Equal(want) {
		t.Errorf("refund = %s, want %s", res.RefundAmount, want)
	}
	if len(payments.refunds) != 1 {
		t.Fatalf("refund records = %d, want 1", len(payments.refunds))
	}
	rec := payments.refunds[0]
	if rec.PaymentID != "pay-1" || rec.Reason != "customer asked" || !rec.Amount.Equal(res.RefundAmount) {
		t.Errorf("refund record = %+v", rec)
	}
	if rec.Status != models.RefundPending {
		t.Errorf("refund status = %q, want %q", rec.Status, models.RefundPending)
	}

	// The hold is gone: the slot can be taken again.
	if _, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	}); err != nil {
		t.Errorf("PreBook after cancel: %v", err)
	}
}

func TestCancelWithoutApprovedPayment(t *testing.T) {
	svc, repo, payments, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}
	if _, err := repo.Transition(ctx, testTenant, appt.ID, models.StatusPreBooked, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	res, err := svc.Cancel(ctx, testTenant, appt.ID, "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !res.RefundAmount.IsZero() {
		t.Errorf("refund = %s, want 0", res.RefundAmount)
	}
	if len(payments.refunds) != 0 {
		t.Errorf("refund records = %d, want none", len(payments.refunds))
	}
}

func TestInvalidTransitions(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	// Cancelling an unconfirmed hold is illegal; the error names the status found.
	_, err = svc.Cancel(ctx, testTenant, appt.ID, "")
	se, ok := utils.AsServiceError(err)
	if !ok || se.Code != utils.CodeInvalidTransition {
		t.Fatalf("Cancel error = %v, want %s", err, utils.CodeInvalidTransition)
	}
	if want := "expected CONFIRMED, found PRE_BOOKED"; se.Message != want {
		t.Errorf("message = %q, want %q", se.Message, want)
	}

	if _, err := repo.Transition(ctx, testTenant, appt.ID, models.StatusPreBooked, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := svc.Complete(ctx, testTenant, appt.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// COMPLETED is terminal.
	_, err = svc.NoShow(ctx, testTenant, appt.ID)
	if se, ok := utils.AsServiceError(err); !ok || se.Code != utils.CodeInvalidTransition {
		t.Errorf("NoShow on completed = %v, want %s", err, utils.CodeInvalidTransition)
	}

	// Unknown id surfaces NOT_FOUND, not a transition error.
	_, err = svc.Complete(ctx, testTenant, "missing")
	if se, ok := utils.AsServiceError(err); !ok || se.Code != utils.CodeNotFound {
		t.Errorf("Complete on missing = %v, want %s", err, utils.CodeNotFound)
	}
}

func TestExpire(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	scheduledAt := time.Now().UTC().Add(48 * time.Hour)

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	// Not yet due: nothing changes.
	if err := svc.Expire(ctx, appt.ID); err != nil {
		t.Fatalf("Expire before deadline: %v", err)
	}
	if got, _ := repo.GetByID(ctx, testTenant, appt.ID); got.Status != models.StatusPreBooked {
		t.Fatalf("status = %s, want untouched %s", got.Status, models.StatusPreBooked)
	}

	// Force the deadline into the past.
	repo.mu.Lock()
	repo.appts[appt.ID].ExpiresAt = time.Now().UTC().Add(-time.Minute)
	repo.mu.Unlock()

	if err := svc.Expire(ctx, appt.ID); err != nil {
		t.Fatalf("Expire: %v", err)
	}
	if got, _ := repo.GetByID(ctx, testTenant, appt.ID); got.Status != models.StatusExpired {
		t.Errorf("status = %s, want %s", got.Status, models.StatusExpired)
	}

	// The released slot is bookable again.
	if _, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1", ScheduledAt: scheduledAt,
	}); err != nil {
		t.Errorf("PreBook after expiry: %v", err)
	}
}

func TestExpireIsNoOpAfterConfirmation(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	repo.mu.Lock()
	repo.appts[appt.ID].ExpiresAt = time.Now().UTC().Add(-time.Minute)
	repo.mu.Unlock()
	if _, err := repo.Transition(ctx, testTenant, appt.ID, models.StatusPreBooked, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// The approval committed first; late expiry must not claw it back.
	if err := svc.Expire(ctx, appt.ID); err != nil {
		t.Fatalf("Expire: %v", err)
	}
	if got, _ := repo.GetByID(ctx, testTenant, appt.ID); got.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want %s", got.Status, models.StatusConfirmed)
	}

	// Unknown appointment is a quiet no-op for the worker.
	if err := svc.Expire(ctx, "missing"); err != nil {
		t.Errorf("Expire on missing id: %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	var overdue []string
	for i, resource := range []string{"groomer-1", "groomer-2", "groomer-3"} {
		appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
			PetID: "pet-1", ServiceID: "svc-1", ResourceID: resource,
			ScheduledAt: time.Now().UTC().Add(time.Duration(24+i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("PreBook %s: %v", resource, err)
		}
		if i < 2 {
			repo.mu.Lock()
			repo.appts[appt.ID].ExpiresAt = time.Now().UTC().Add(-time.Minute)
			repo.mu.Unlock()
			overdue = append(overdue, appt.ID)
		}
	}

	n, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 2 {
		t.Errorf("swept %d holds, want 2", n)
	}
	for _, id := range overdue {
		if got, _ := repo.GetByID(ctx, testTenant, id); got.Status != models.StatusExpired {
			t.Errorf("appointment %s status = %s, want %s", id, got.Status, models.StatusExpired)
		}
	}
}

func TestListDueForExpiryIncludesDeadlineInstant(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	// A hold is due the instant its deadline arrives, not one tick later.
	// The sweep and the deferred expiry task share this boundary.
	repo.mu.Lock()
	deadline := repo.appts[appt.ID].ExpiresAt
	repo.mu.Unlock()

	due, err := repo.ListDueForExpiry(ctx, deadline, 500)
	if err != nil {
		t.Fatalf("ListDueForExpiry: %v", err)
	}
	if len(due) != 1 || due[0].ID != appt.ID {
		t.Errorf("due at deadline instant = %v, want [%s]", due, appt.ID)
	}
	if due, _ := repo.ListDueForExpiry(ctx, deadline.Add(-time.Nanosecond), 500); len(due) != 0 {
		t.Errorf("due before deadline = %v, want none", due)
	}
}

func TestGetScopedToTenant(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.PreBook(ctx, testTenant, PreBookInput{
		PetID: "pet-1", ServiceID: "svc-1", ResourceID: "groomer-1",
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PreBook: %v", err)
	}

	if _, err := svc.Get(ctx, testTenant, appt.ID); err != nil {
		t.Errorf("Get: %v", err)
	}
	_, err = svc.Get(ctx, "tenant-2", appt.ID)
	if se, ok := utils.AsServiceError(err); !ok || se.Code != utils.CodeNotFound {
		t.Errorf("cross-tenant Get = %v, want %s", err, utils.CodeNotFound)
	}
}
