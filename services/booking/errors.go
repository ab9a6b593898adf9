package booking

import (
	"errors"
	"fmt"
)

// ErrBookingInProgress is returned when a booking attempt is re-triggered
// while the previous one is still in flight.
var ErrBookingInProgress = errors.New("a booking is already in progress")

// ValidationError is a precondition failure caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Booking flow stages, in the order they run.
const (
	StageOrder    = "order"
	StageCheckout = "checkout"
	StageVerify   = "verify"
	StageBook     = "book"
)

// FlowError marks which stage of the payment/booking sequence failed. When
// PaymentID is set the payment was already captured and the failure is left
// for backend-side reconciliation; no client-initiated refund exists.
type FlowError struct {
	Stage     string
	PaymentID string
	Err       error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// NeedsReconciliation reports whether err represents a captured payment with
// no booking record behind it.
func NeedsReconciliation(err error) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.PaymentID != ""
}
