package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "groomify/database/repository/appointment"
	catalogRepo "groomify/database/repository/catalog"
	paymentRepo "groomify/database/repository/payment"
	"groomify/models"
	"groomify/services/booking"
	"groomify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const checkoutLinkTTL = 10 * time.Minute

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Payments     paymentRepo.PaymentRepository
	Appointments appointmentRepo.AppointmentRepository
	Catalog      catalogRepo.CatalogRepository
	Gateway      CheckoutGateway

	// Cache holds issued checkout links so a retried checkout request
	// returns the link already created. Optional.
	Cache *redis.Client

	DepositPercent int64

	Logger *zap.Logger
}

func (s *DefaultPaymentService) CreateCheckout(ctx context.Context, tenantID, appointmentID string) (string, error) {
	appt, err := s.Appointments.GetByIDAnyTenant(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return "", utils.NewValidationError("appointment %s not found", appointmentID)
	}
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	if appt.TenantID != tenantID {
		return "", utils.NewValidationError("appointment %s belongs to another tenant", appointmentID)
	}
	if appt.Status != models.StatusPreBooked {
		return "", utils.NewValidationError("appointment must be %s, found %s", models.StatusPreBooked, appt.Status)
	}

	if link := s.cachedLink(ctx, appointmentID); link != "" {
		return link, nil
	}
	if _, err := s.Payments.GetByAppointment(ctx, tenantID, appointmentID); err == nil {
		return "", utils.NewValidationError("checkout already created for appointment %s", appointmentID)
	} else if !errors.Is(err, paymentRepo.ErrNotFound) {
		return "", fmt.Errorf("checkout: %w", err)
	}

	svc, err := s.Catalog.GetService(ctx, tenantID, appt.ServiceID)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}

	// Deposit is a snapshot of the current service price; later price edits
	// do not touch it.
	amount := svc.Price.Mul(decimal.NewFromInt(s.DepositPercent)).Div(decimal.NewFromInt(100)).Round(2)

	now := time.Now().UTC()
	row := &models.Payment{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		Amount:        amount,
		Status:        models.PaymentCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Payments.Create(ctx, row); err != nil {
		if errors.Is(err, paymentRepo.ErrDuplicate) {
			return "", utils.NewValidationError("checkout already created for appointment %s", appointmentID)
		}
		return "", fmt.Errorf("checkout: %w", err)
	}

	// The gateway call happens outside any storage transaction. On failure
	// the half-initialized row is removed so a later checkout can retry.
	link, err := s.Gateway.CreatePreference(ctx, amount, row.ID)
	if err != nil {
		if delErr := s.Payments.Delete(ctx, tenantID, row.ID); delErr != nil {
			s.Logger.Error("failed to roll back payment after gateway error",
				zap.String("payment_id", row.ID), zap.Error(delErr))
		}
		return "", utils.NewServiceError(utils.CodePaymentError,
			fmt.Sprintf("payment gateway error: %v", err))
	}

	if err := s.Payments.SetExternalID(ctx, tenantID, row.ID, link.ExternalID); err != nil {
		if delErr := s.Payments.Delete(ctx, tenantID, row.ID); delErr != nil {
			s.Logger.Error("failed to roll back payment after persist error",
				zap.String("payment_id", row.ID), zap.Error(delErr))
		}
		return "", fmt.Errorf("checkout: %w", err)
	}

	s.storeLink(ctx, appointmentID, link.URL)

	s.Logger.Info("checkout created",
		zap.String("tenant_id", tenantID),
		zap.String("appointment_id", appointmentID),
		zap.String("external_payment_id", link.ExternalID),
		zap.String("amount", amount.StringFixed(2)))
	return link.URL, nil
}

func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, event models.WebhookEvent) (*models.WebhookResult, error) {
	if event.Type != "payment" {
		s.Logger.Info("webhook ignored, not a payment notification", zap.String("type", event.Type))
		return &models.WebhookResult{Status: models.WebhookIgnored}, nil
	}
	if event.Data.ID == "" {
		return nil, utils.NewServiceError(utils.CodeMissingPaymentID, "webhook payload carries no payment id")
	}

	externalID := event.Data.ID
	s.Logger.Info("webhook received", zap.String("external_payment_id", externalID))

	row, err := s.Payments.GetByExternalID(ctx, externalID)
	if errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodePaymentNotFound,
			fmt.Sprintf("no payment with external id %s", externalID))
	}
	if err != nil {
		return nil, utils.NewServiceError(utils.CodeWebhookError,
			fmt.Sprintf("webhook processing failed: %v", err))
	}

	// Fast path of the idempotency gate: a processed payment is a no-op
	// success, and the provider is not queried again. The authoritative
	// claim happens inside ApplyOutcome.
	if row.WebhookProcessed {
		s.Logger.Info("webhook already processed",
			zap.String("tenant_id", row.TenantID),
			zap.String("appointment_id", row.AppointmentID),
			zap.String("external_payment_id", externalID))
		return &models.WebhookResult{Status: models.WebhookAlreadyProcessed}, nil
	}

	// The payload is only a pointer; the provider holds the truth.
	status, err := s.Gateway.GetStatus(ctx, externalID)
	if err != nil {
		return nil, utils.NewServiceError(utils.CodeProviderQuery,
			fmt.Sprintf("payment provider query failed: %v", err))
	}
	s.Logger.Info("payment status fetched",
		zap.String("tenant_id", row.TenantID),
		zap.String("appointment_id", row.AppointmentID),
		zap.String("external_payment_id", externalID),
		zap.String("status", status))

	switch status {
	case GatewayApproved:
		return s.applyOutcome(ctx, row, externalID, status, models.PaymentApproved, models.StatusConfirmed, false)
	case GatewayRejected:
		return s.applyOutcome(ctx, row, externalID, status, models.PaymentRejected, models.StatusRejected, true)
	default:
		// Non-terminal: acknowledged without claiming the gate, so a later
		// terminal notification can still apply.
		return &models.WebhookResult{Status: models.WebhookIgnored, PaymentStatus: status}, nil
	}
}

func (s *DefaultPaymentService) applyOutcome(ctx context.Context, row *models.Payment, externalID, gatewayStatus, paymentStatus, apptStatus string, releaseHold bool) (*models.WebhookResult, error) {
	_, appt, err := s.Payments.ApplyOutcome(ctx, externalID, paymentStatus, apptStatus, releaseHold)
	if errors.Is(err, paymentRepo.ErrAlreadyProcessed) {
		// A concurrent delivery claimed the gate first.
		s.Logger.Info("webhook already processed",
			zap.String("tenant_id", row.TenantID),
			zap.String("appointment_id", row.AppointmentID),
			zap.String("external_payment_id", externalID))
		return &models.WebhookResult{Status: models.WebhookAlreadyProcessed}, nil
	}
	if errors.Is(err, paymentRepo.ErrStaleAppointment) {
		current, getErr := s.Appointments.GetByIDAnyTenant(ctx, row.AppointmentID)
		if getErr != nil {
			return nil, utils.NewServiceError(utils.CodeWebhookError,
				fmt.Sprintf("webhook processing failed: %v", getErr))
		}
		return nil, booking.NewInvalidTransition(models.StatusPreBooked, current.Status)
	}
	if err != nil {
		return nil, utils.NewServiceError(utils.CodeWebhookError,
			fmt.Sprintf("webhook processing failed: %v", err))
	}

	fields := []zap.Field{
		zap.String("tenant_id", appt.TenantID),
		zap.String("appointment_id", appt.ID),
		zap.String("external_payment_id", externalID),
	}
	if paymentStatus == models.PaymentApproved {
		s.Logger.Info("payment approval applied", fields...)
	} else {
		s.Logger.Info("payment rejection applied", fields...)
	}
	return &models.WebhookResult{Status: models.WebhookProcessed, PaymentStatus: gatewayStatus}, nil
}

func (s *DefaultPaymentService) cachedLink(ctx context.Context, appointmentID string) string {
	if s.Cache == nil {
		return ""
	}
	link, err := s.Cache.Get(ctx, checkoutKey(appointmentID)).Result()
	if err != nil {
		return ""
	}
	return link
}

func (s *DefaultPaymentService) storeLink(ctx context.Context, appointmentID, link string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, checkoutKey(appointmentID), link, checkoutLinkTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache checkout link",
			zap.String("appointment_id", appointmentID), zap.Error(err))
	}
}

func checkoutKey(appointmentID string) string {
	return "checkout:" + appointmentID
}
