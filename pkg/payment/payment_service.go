package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// ServiceInterface defines the contract for the payment redirect handoff.
type ServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, orderID, payerEmail, mealName string, amount float64) (*CheckoutSession, error)
}

// CheckoutSession is the opaque hosted-payment handoff returned to the client.
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeService creates Stripe Checkout Sessions. The client navigates the
// whole page to the returned URL; Stripe redirects back to the configured
// success/failure routes when the payment settles.
type StripeService struct {
	successURL string
	cancelURL  string
}

// NewStripeService configures the global Stripe key and the redirect return
// legs on the client origin.
func NewStripeService(apiKey, clientOrigin string) *StripeService {
	stripe.Key = apiKey
	return &StripeService{
		successURL: clientOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  clientOrigin + "/payment-failed",
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, orderID, payerEmail, mealName string, amount float64) (*CheckoutSession, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %.2f", amount)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(payerEmail),
		ClientReferenceID: stripe.String(orderID),
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(mealName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment.CreateCheckoutSession: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
