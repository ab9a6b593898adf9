package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"lawconnect/api"
	"lawconnect/gateway"
	"lawconnect/models"
	"lawconnect/utils"
)

// Flow drives one booking dialog for one lawyer: date and slot selection,
// payment order creation, the external checkout handshake, verification and
// booking creation, strictly in that order.
type Flow struct {
	backend  BackendAPI
	gateway  gateway.PaymentGateway
	notifier utils.Notifier
	logger   *zap.Logger
	validate *validator.Validate

	lawyer models.Lawyer
	user   models.User

	mu       sync.Mutex
	date     string
	slot     string
	mode     string
	slots    []string
	fetchGen uint64
	booking  bool
}

func NewFlow(backend BackendAPI, gw gateway.PaymentGateway, notifier utils.Notifier, lawyer models.Lawyer, user models.User) *Flow {
	return &Flow{
		backend:  backend,
		gateway:  gw,
		notifier: notifier,
		logger:   utils.GetLogger(),
		validate: validator.New(),
		lawyer:   lawyer,
		user:     user,
	}
}

// SelectDate sets the consultation date and fetches that day's slots. A
// response that arrives after the date changed again is discarded, so a slow
// fetch can never overwrite a newer date's slot list. A previously selected
// slot survives the change only if it is still present in the new list.
func (f *Flow) SelectDate(ctx context.Context, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, NewValidationError("date", "Invalid date format")
	}
	today := time.Now().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, NewValidationError("date", "Date cannot be in the past")
	}

	f.mu.Lock()
	f.date = date
	f.fetchGen++
	gen := f.fetchGen
	f.mu.Unlock()

	slots, err := f.backend.CheckSlots(ctx, f.lawyer.ID, date)
	if err != nil {
		f.notifier.Error("Could not load available slots")
		f.mu.Lock()
		if gen == f.fetchGen {
			f.slots = nil
			f.slot = ""
		}
		f.mu.Unlock()
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.fetchGen {
		// Stale response for a date that is no longer selected.
		return append([]string(nil), f.slots...), nil
	}
	f.slots = slots
	if f.slot != "" && !contains(slots, f.slot) {
		f.slot = ""
	}
	return append([]string(nil), slots...), nil
}

// SelectSlot picks a time slot from the currently fetched list.
func (f *Flow) SelectSlot(slot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !contains(f.slots, slot) {
		return NewValidationError("slot", "Selected time slot is not available")
	}
	f.slot = slot
	return nil
}

// SelectMode picks a consultation mode offered by the lawyer.
func (f *Flow) SelectMode(mode string) error {
	if !f.lawyer.SupportsMode(mode) {
		return NewValidationError("mode", fmt.Sprintf("Lawyer does not offer %s consultations", mode))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
	return nil
}

// Slots returns the current slot list.
func (f *Flow) Slots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.slots...)
}

// Selection returns the currently selected date, slot and mode.
func (f *Flow) Selection() (date, slot, mode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date, f.slot, f.mode
}

// CanProceed reports whether the payment step may be entered: mode, date and
// slot selected and the fetched slot list non-empty.
func (f *Flow) CanProceed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode != "" && f.date != "" && f.slot != "" && len(f.slots) > 0
}

// Book runs the payment and booking sequence: create order, open checkout,
// verify the signed confirmation, create the booking. A booking is created
// only after verification succeeds for this attempt's order.
func (f *Flow) Book(ctx context.Context, caseDetails string) (*models.Booking, error) {
	f.mu.Lock()
	if f.booking {
		f.mu.Unlock()
		return nil, ErrBookingInProgress
	}
	f.booking = true
	date, slot, mode := f.date, f.slot, f.mode
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.booking = false
		f.mu.Unlock()
	}()

	// Each missing selection gets its own message.
	if mode == "" {
		f.notifier.Error("Please select a consultation mode")
		return nil, NewValidationError("mode", "Please select a consultation mode")
	}
	if date == "" {
		f.notifier.Error("Please select a date")
		return nil, NewValidationError("date", "Please select a date")
	}
	if slot == "" {
		f.notifier.Error("Please select a time slot")
		return nil, NewValidationError("slot", "Please select a time slot")
	}

	orderReq := models.OrderRequest{
		Amount:   f.lawyer.ConsultationFee,
		UserID:   f.user.ID,
		LawyerID: f.lawyer.ID,
		Mode:     mode,
		Slot:     slot,
		Date:     date,
	}
	if err := f.validate.Struct(orderReq); err != nil {
		return nil, NewValidationError("order", "Incomplete booking details")
	}

	order, err := f.backend.CreateOrder(ctx, orderReq)
	if err != nil {
		f.notifier.Error(userMessage(err, "Could not initiate payment"))
		return nil, &FlowError{Stage: StageOrder, Err: err}
	}

	prefill := models.Prefill{Name: f.user.Name, Email: f.user.Email, Phone: f.user.Phone}
	result, err := f.gateway.Checkout(ctx, *order, prefill)
	if err != nil {
		var ce *gateway.CheckoutError
		if errors.As(err, &ce) {
			f.notifier.Error("Payment failed: " + ce.Description)
		} else {
			f.notifier.Error("Payment was not completed")
		}
		return nil, &FlowError{Stage: StageCheckout, Err: err}
	}

	if result.OrderID != order.ID {
		// The confirmation must reference this attempt's order.
		err := fmt.Errorf("confirmation references order %s, expected %s", result.OrderID, order.ID)
		f.notifier.Error("Payment verification failed")
		return nil, &FlowError{Stage: StageVerify, PaymentID: result.PaymentID, Err: err}
	}

	if err := f.backend.VerifyPayment(ctx, *result); err != nil {
		f.logger.Error("payment captured but verification failed",
			zap.String("payment_id", result.PaymentID),
			zap.String("order_id", result.OrderID),
			zap.Error(err))
		f.notifier.Error("Payment verification failed. Please contact support.")
		return nil, &FlowError{Stage: StageVerify, PaymentID: result.PaymentID, Err: err}
	}

	bookingReq := models.BookingRequest{
		UserID:      f.user.ID,
		LawyerID:    f.lawyer.ID,
		Date:        date,
		Slot:        slot,
		Mode:        mode,
		PaymentID:   result.PaymentID,
		PaymentMode: "razorpay",
		CaseDetails: caseDetails,
	}
	booked, err := f.backend.CreateBooking(ctx, bookingReq)
	if err != nil {
		f.logger.Error("payment verified but booking creation failed",
			zap.String("payment_id", result.PaymentID),
			zap.Error(err))
		f.notifier.Error(userMessage(err, "Booking could not be created. Please contact support."))
		return nil, &FlowError{Stage: StageBook, PaymentID: result.PaymentID, Err: err}
	}

	f.notifier.Success("Consultation booked successfully")
	return booked, nil
}

// userMessage prefers the backend-provided message over the fallback.
func userMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != api.GenericErrMessage {
		return apiErr.Message
	}
	return fallback
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
