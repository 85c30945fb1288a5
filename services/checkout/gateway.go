package checkout

import (
	"fmt"
	"math"

	"bakehouse/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// PaymentGateway creates hosted checkout sessions with the payment
// processor. The processor guarantees at-most-one successful charge per
// session; this service only has to map sessions back to orders.
type PaymentGateway interface {
	// CreateSession returns the processor's session ID and the hosted
	// payment page URL for the order.
	CreateSession(order *models.Order, successURL, cancelURL string) (sessionID, url string, err error)
}

// StripeGateway implements PaymentGateway on Stripe Checkout. The package
// level stripe.Key is set once at startup.
type StripeGateway struct{}

// CreateSession creates a Stripe Checkout session mirroring the order's lines.
func (g *StripeGateway) CreateSession(order *models.Order, successURL, cancelURL string) (string, string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items))
	for _, it := range order.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(order.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(toMinorUnits(it.UnitPrice)),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripe.String(order.CustomerEmail),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
	}
	params.AddMetadata("order_id", order.ID)
	params.AddMetadata("delivery_date", order.DeliveryDate)

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// toMinorUnits converts a price to the processor's integer minor units.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
