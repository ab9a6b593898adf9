// Package gateway abstracts the third-party payment widget behind a
// capability interface so the concrete checkout can be swapped or mocked.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"lawconnect/models"
)

// ErrCheckoutAbandoned is returned when the checkout context is cancelled
// before either gateway callback fires.
var ErrCheckoutAbandoned = errors.New("checkout abandoned")

// CheckoutError is a gateway-reported payment failure.
type CheckoutError struct {
	Code        string
	Description string
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("payment failed (%s): %s", e.Code, e.Description)
}

// PaymentGateway collects payment credentials for an order and produces the
// signed confirmation. Exactly one of success (a result) or failure (an
// error) is returned per checkout.
type PaymentGateway interface {
	Checkout(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error)
}
