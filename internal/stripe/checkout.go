// Package stripe hands a cart off to Stripe Checkout.
package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"

	"github.com/bookrackshop/bookrack/internal/cart"
)

// Client wraps the Stripe API client used for cart checkout.
type Client struct {
	client *stripe.Client
}

// NewClient creates a checkout client with the given secret key.
func NewClient(secretKey string) *Client {
	return &Client{
		client: stripe.NewClient(secretKey),
	}
}

// CheckoutParams holds parameters for creating a cart checkout session.
type CheckoutParams struct {
	Items      []cart.Item
	Currency   string
	SessionRef string
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession creates a Stripe Checkout session covering every
// cart line and returns the URL to send the visitor to. Prices are whole
// currency units and are converted to the smallest unit here.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("context is required")
	}
	if len(params.Items) == 0 {
		return "", fmt.Errorf("cart has no items")
	}
	if params.Currency == "" {
		return "", fmt.Errorf("currency is required")
	}

	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(params.Items))
	for _, item := range params.Items {
		quantity := int64(item.Quantity)
		if quantity <= 0 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(params.Currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				UnitAmount: stripe.Int64(int64(item.Price) * 100),
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
		LineItems:          lineItems,
		Metadata: map[string]string{
			"cart_session": params.SessionRef,
		},
	}

	sess, err := c.client.V1CheckoutSessions.Create(ctx, sessionParams)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.URL, nil
}
