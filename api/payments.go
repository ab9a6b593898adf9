package api

import (
	"context"
	"errors"
	"net/http"

	"lawconnect/models"
)

// ErrVerificationFailed is returned when the backend answers the verify call
// but does not confirm the payment's authenticity.
var ErrVerificationFailed = errors.New("payment verification failed")

// CreateOrder asks the backend to create a payment order for one booking
// attempt.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
	var resp struct {
		Order models.PaymentOrder `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/payment/create-order", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// VerifyPayment forwards the gateway's signed confirmation for authenticity
// verification. A nil return means verified.
func (c *Client) VerifyPayment(ctx context.Context, result models.PaymentResult) error {
	var resp struct {
		Verified bool `json:"verified"`
	}
	if err := c.do(ctx, http.MethodPost, "/payment/verify", result, &resp); err != nil {
		return err
	}
	if !resp.Verified {
		return ErrVerificationFailed
	}
	return nil
}
