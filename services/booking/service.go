package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "groomify/database/repository/appointment"
	catalogRepo "groomify/database/repository/catalog"
	paymentRepo "groomify/database/repository/payment"
	"groomify/models"
	"groomify/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     appointmentRepo.AppointmentRepository
	Catalog  catalogRepo.CatalogRepository
	Payments paymentRepo.PaymentRepository
	Expiry   ExpiryScheduler

	HoldTTL time.Duration
	Refunds RefundPolicy

	Logger *zap.Logger
}

func (s *DefaultBookingService) PreBook(ctx context.Context, tenantID string, in PreBookInput) (*models.Appointment, error) {
	if in.ResourceID == "" {
		return nil, utils.NewValidationError("resource_id is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, utils.NewValidationError("scheduled_at is required")
	}

	pet, err := s.Catalog.GetPet(ctx, tenantID, in.PetID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NewValidationError("pet %s not found in tenant", in.PetID)
	}
	if err != nil {
		return nil, fmt.Errorf("pre-book: %w", err)
	}

	svc, err := s.Catalog.GetService(ctx, tenantID, in.ServiceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NewValidationError("service %s not found in tenant", in.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("pre-book: %w", err)
	}
	if !svc.Active {
		return nil, utils.NewValidationError("service %s is not active", in.ServiceID)
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ResourceID:  in.ResourceID,
		CustomerID:  pet.CustomerID,
		PetID:       pet.ID,
		ServiceID:   svc.ID,
		ScheduledAt: in.ScheduledAt.UTC(),
		EndTime:     in.ScheduledAt.UTC().Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Status:      models.StatusPreBooked,
		ExpiresAt:   HoldDeadline(now, s.HoldTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.CreateWithHold(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrOverlap) {
			return nil, NewSchedulingConflict(in.ResourceID)
		}
		return nil, fmt.Errorf("pre-book: %w", err)
	}

	// The periodic sweep backstops a failed enqueue, so the hold is placed
	// either way.
	if err := s.Expiry.ScheduleExpiry(ctx, appt.ID, appt.ExpiresAt); err != nil {
		s.Logger.Warn("failed to schedule hold expiry",
			zap.String("tenant_id", tenantID),
			zap.String("appointment_id", appt.ID),
			zap.Error(err))
	}

	s.Logger.Info("pre-booking created",
		zap.String("tenant_id", tenantID),
		zap.String("appointment_id", appt.ID),
		zap.String("resource_id", appt.ResourceID),
		zap.Time("expires_at", appt.ExpiresAt))
	return appt, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, tenantID, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("appointment %s not found", id))
	}
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, tenantID, id, reason string) (*CancelResult, error) {
	now := time.Now().UTC()

	appt, err := s.transitionReleasing(ctx, tenantID, id, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	refund := decimal.Zero
	payment, err := s.Payments.GetByAppointment(ctx, tenantID, id)
	switch {
	case errors.Is(err, paymentRepo.ErrNotFound):
		// Nothing paid, nothing to refund.
	case err != nil:
		return nil, fmt.Errorf("cancel: %w", err)
	case payment.Status == models.PaymentApproved:
		refund = s.Refunds.CalculateRefund(appt.ScheduledAt, now, payment.Amount)
		rec := &models.Refund{
			ID:            uuid.New().String(),
			TenantID:      tenantID,
			AppointmentID: appt.ID,
			PaymentID:     payment.ID,
			Amount:        refund,
			Status:        models.RefundPending,
			Reason:        reason,
			CreatedAt:     now,
		}
		if err := s.Payments.CreateRefund(ctx, rec); err != nil {
			return nil, fmt.Errorf("cancel: %w", err)
		}
	}

	s.Logger.Info("appointment cancelled",
		zap.String("tenant_id", tenantID),
		zap.String("appointment_id", appt.ID),
		zap.String("refund_amount", refund.StringFixed(2)))
	return &CancelResult{Appointment: appt, RefundAmount: refund}, nil
}

func (s *DefaultBookingService) Complete(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	return s.transitionReleasing(ctx, tenantID, id, models.StatusCompleted)
}

func (s *DefaultBookingService) NoShow(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	return s.transitionReleasing(ctx, tenantID, id, models.StatusNoShow)
}

// transitionReleasing applies the unique legal transition into toStatus and
// frees the calendar hold. On a stale compare-and-set it re-reads the row so
// the InvalidTransition error can name the status actually found.
func (s *DefaultBookingService) transitionReleasing(ctx context.Context, tenantID, id, toStatus string) (*models.Appointment, error) {
	from := requiredFrom(toStatus)

	appt, err := s.Repo.TransitionAndRelease(ctx, tenantID, id, from, toStatus)
	if errors.Is(err, appointmentRepo.ErrStaleStatus) {
		current, getErr := s.Repo.GetByID(ctx, tenantID, id)
		if errors.Is(getErr, appointmentRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("appointment %s not found", id))
		}
		if getErr != nil {
			return nil, getErr
		}
		return nil, NewInvalidTransition(from, current.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("transition to %s: %w", toStatus, err)
	}
	return appt, nil
}

func (s *DefaultBookingService) Expire(ctx context.Context, appointmentID string) error {
	appt, err := s.Repo.GetByIDAnyTenant(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if appt.Status != models.StatusPreBooked {
		return nil
	}
	if time.Now().UTC().Before(appt.ExpiresAt) {
		return nil
	}

	// Empty tenant id: the expiry path runs without tenant context. The
	// compare-and-set on PRE_BOOKED settles the race with a concurrent
	// approval; whoever commits first wins.
	_, err = s.Repo.TransitionAndRelease(ctx, "", appointmentID, models.StatusPreBooked, models.StatusExpired)
	if errors.Is(err, appointmentRepo.ErrStaleStatus) {
		s.Logger.Info("hold expiry skipped, status changed concurrently",
			zap.String("appointment_id", appointmentID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("expire: %w", err)
	}

	s.Logger.Info("pre-booking expired",
		zap.String("tenant_id", appt.TenantID),
		zap.String("appointment_id", appointmentID))
	return nil
}

func (s *DefaultBookingService) SweepExpired(ctx context.Context) (int, error) {
	due, err := s.Repo.ListDueForExpiry(ctx, time.Now().UTC(), 500)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	expired := 0
	for _, appt := range due {
		if err := s.Expire(ctx, appt.ID); err != nil {
			s.Logger.Warn("sweep: failed to expire hold",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		expired++
	}
	if expired > 0 {
		s.Logger.Info("expired overdue pre-bookings", zap.Int("count", expired))
	}
	return expired, nil
}
