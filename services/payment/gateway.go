package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Gateway-normalized payment statuses. Anything else a provider reports is
// treated as non-terminal.
const (
	GatewayApproved = "approved"
	GatewayRejected = "rejected"
	GatewayPending  = "pending"
)

// CheckoutLink is the provider-issued handle for a checkout: the correlation
// id we persist and the redirect URL handed to the customer.
type CheckoutLink struct {
	ExternalID string
	URL        string
}

// CheckoutGateway is the outbound payment-provider collaborator. The core
// never trusts a webhook payload for status; it always re-queries GetStatus.
type CheckoutGateway interface {
	CreatePreference(ctx context.Context, amount decimal.Decimal, reference string) (*CheckoutLink, error)
	GetStatus(ctx context.Context, externalID string) (string, error)
}

// StripeCheckoutGateway implements CheckoutGateway on Stripe Checkout
// Sessions.
type StripeCheckoutGateway struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

func NewStripeCheckoutGateway(currency, successURL, cancelURL string) *StripeCheckoutGateway {
	return &StripeCheckoutGateway{Currency: currency, SuccessURL: successURL, CancelURL: cancelURL}
}

func (g *StripeCheckoutGateway) CreatePreference(ctx context.Context, amount decimal.Decimal, reference string) (*CheckoutLink, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(reference),
		SuccessURL:        stripe.String(g.SuccessURL),
		CancelURL:         stripe.String(g.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.Currency),
					// Stripe wants minor units.
					UnitAmount: stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Appointment deposit"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create failed: %w", err)
	}
	return &CheckoutLink{ExternalID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeCheckoutGateway) GetStatus(ctx context.Context, externalID string) (string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(externalID, params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session fetch failed: %w", err)
	}

	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return GatewayApproved, nil
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return GatewayRejected, nil
	default:
		return GatewayPending, nil
	}
}
