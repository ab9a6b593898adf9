package booking

import (
	"context"
	"errors"
	"testing"

	"lawconnect/gateway"
	"lawconnect/models"
)

type fakeBackend struct {
	calls []string

	checkSlotsFn    func(ctx context.Context, lawyerID, date string) ([]string, error)
	createOrderFn   func(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error)
	verifyFn        func(ctx context.Context, result models.PaymentResult) error
	createBookingFn func(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	userBookingsFn  func(ctx context.Context, userID string, page, limit int) (*models.Page, error)
	lawyerOrdersFn  func(ctx context.Context, lawyerID string) ([]models.Booking, error)
	cancelFn        func(ctx context.Context, bookingID string) error
	completeFn      func(ctx context.Context, bookingID string) error
	userReviewsFn   func(ctx context.Context, userID string) ([]models.Review, error)
	submitReviewFn  func(ctx context.Context, req models.ReviewRequest) (*models.Review, error)
}

func (f *fakeBackend) CheckSlots(ctx context.Context, lawyerID, date string) ([]string, error) {
	f.calls = append(f.calls, "checkSlots")
	if f.checkSlotsFn == nil {
		return nil, nil
	}
	return f.checkSlotsFn(ctx, lawyerID, date)
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
	f.calls = append(f.calls, "createOrder")
	if f.createOrderFn == nil {
		return &models.PaymentOrder{ID: "order_1", Amount: req.Amount, Currency: "INR"}, nil
	}
	return f.createOrderFn(ctx, req)
}

func (f *fakeBackend) VerifyPayment(ctx context.Context, result models.PaymentResult) error {
	f.calls = append(f.calls, "verify")
	if f.verifyFn == nil {
		return nil
	}
	return f.verifyFn(ctx, result)
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	f.calls = append(f.calls, "createBooking")
	if f.createBookingFn == nil {
		return &models.Booking{
			ID: "bk_1", UserID: req.UserID, LawyerID: req.LawyerID,
			Date: req.Date, Slot: req.Slot, Mode: req.Mode,
			PaymentID: req.PaymentID, Status: models.StatusConfirmed,
		}, nil
	}
	return f.createBookingFn(ctx, req)
}

func (f *fakeBackend) UserBookings(ctx context.Context, userID string, page, limit int) (*models.Page, error) {
	if f.userBookingsFn == nil {
		return &models.Page{}, nil
	}
	return f.userBookingsFn(ctx, userID, page, limit)
}

func (f *fakeBackend) LawyerBookings(ctx context.Context, lawyerID string) ([]models.Booking, error) {
	if f.lawyerOrdersFn == nil {
		return nil, nil
	}
	return f.lawyerOrdersFn(ctx, lawyerID)
}

func (f *fakeBackend) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBackend) CancelBooking(ctx context.Context, bookingID string) error {
	f.calls = append(f.calls, "cancel")
	if f.cancelFn == nil {
		return nil
	}
	return f.cancelFn(ctx, bookingID)
}

func (f *fakeBackend) CompleteBooking(ctx context.Context, bookingID string) error {
	f.calls = append(f.calls, "complete")
	if f.completeFn == nil {
		return nil
	}
	return f.completeFn(ctx, bookingID)
}

func (f *fakeBackend) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	if f.userReviewsFn == nil {
		return nil, nil
	}
	return f.userReviewsFn(ctx, userID)
}

func (f *fakeBackend) SubmitReview(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	f.calls = append(f.calls, "submitReview")
	if f.submitReviewFn == nil {
		return &models.Review{ID: "rv_1", BookingID: req.BookingID, Rating: req.Rating, Comment: req.Comment}, nil
	}
	return f.submitReviewFn(ctx, req)
}

type fakeGateway struct {
	checkoutFn func(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error)
}

func (g *fakeGateway) Checkout(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
	if g.checkoutFn == nil {
		return &models.PaymentResult{OrderID: order.ID, PaymentID: "pay_1", Signature: "sig_1"}, nil
	}
	return g.checkoutFn(ctx, order, prefill)
}

type recordNotifier struct {
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func testLawyer() models.Lawyer {
	return models.Lawyer{
		ID:              "lw_1",
		Name:            "A. Advocate",
		ConsultationFee: 500,
		Modes:           []string{models.ModeVideo, models.ModeCall},
	}
}

func testUser() models.User {
	return models.User{ID: "us_1", Name: "Test User", Email: "user@example.com", UserType: models.RoleUser}
}

func newTestFlow(backend *fakeBackend, gw gateway.PaymentGateway) (*Flow, *recordNotifier) {
	notifier := &recordNotifier{}
	return NewFlow(backend, gw, notifier, testLawyer(), testUser()), notifier
}

func TestSelectDateRejectsPast(t *testing.T) {
	flow, _ := newTestFlow(&fakeBackend{}, &fakeGateway{})

	_, err := flow.SelectDate(context.Background(), "2020-01-01")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "date" {
		t.Fatalf("expected date field, got %q", ve.Field)
	}
}

func TestSelectDateClearsVanishedSlot(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			if date == "2031-05-20" {
				return []string{"09:00-09:30", "10:00-10:30"}, nil
			}
			return []string{"10:00-10:30"}, nil
		},
	}
	flow, _ := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()

	if _, err := flow.SelectDate(ctx, "2031-05-20"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if err := flow.SelectSlot("09:00-09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	if _, err := flow.SelectDate(ctx, "2031-05-21"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, slot, _ := flow.Selection(); slot != "" {
		t.Fatalf("expected vanished slot to be cleared, still have %q", slot)
	}

	// A slot still present in the new list survives the date change.
	if err := flow.SelectSlot("10:00-10:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if _, err := flow.SelectDate(ctx, "2031-05-22"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, slot, _ := flow.Selection(); slot != "10:00-10:30" {
		t.Fatalf("expected surviving slot kept, got %q", slot)
	}
}

func TestSelectDateStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			if date == "2031-05-20" {
				close(started)
				<-release
				return []string{"09:00-09:30"}, nil
			}
			return []string{"11:00-11:30"}, nil
		},
	}
	flow, _ := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		flow.SelectDate(ctx, "2031-05-20")
	}()
	<-started

	if _, err := flow.SelectDate(ctx, "2031-05-21"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	close(release)
	<-done

	slots := flow.Slots()
	if len(slots) != 1 || slots[0] != "11:00-11:30" {
		t.Fatalf("stale response overwrote current slots: %v", slots)
	}
}

func TestSelectDateFetchErrorBlocksSlotStep(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return nil, errors.New("boom")
		},
	}
	flow, notifier := newTestFlow(backend, &fakeGateway{})

	if _, err := flow.SelectDate(context.Background(), "2031-05-20"); err == nil {
		t.Fatalf("expected error")
	}
	if len(notifier.errors) == 0 {
		t.Fatalf("expected a user-visible error notification")
	}
	if err := flow.SelectSlot("09:00-09:30"); err == nil {
		t.Fatalf("expected slot selection to be blocked with no slots")
	}
	if flow.CanProceed() {
		t.Fatalf("expected CanProceed to be false")
	}
}

func TestCanProceed(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	flow, _ := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()

	if flow.CanProceed() {
		t.Fatalf("expected false with nothing selected")
	}
	if _, err := flow.SelectDate(ctx, "2031-05-20"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if flow.CanProceed() {
		t.Fatalf("expected false without slot and mode")
	}
	if err := flow.SelectSlot("09:00-09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if flow.CanProceed() {
		t.Fatalf("expected false without mode")
	}
	if err := flow.SelectMode(models.ModeVideo); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if !flow.CanProceed() {
		t.Fatalf("expected true with mode, date and slot selected")
	}
}

func TestBookHappyPathSequence(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	flow, notifier := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()

	if _, err := flow.SelectDate(ctx, "2031-05-20"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if err := flow.SelectSlot("09:00-09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if err := flow.SelectMode(models.ModeVideo); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}

	booked, err := flow.Book(ctx, "property dispute")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if booked.PaymentID != "pay_1" {
		t.Fatalf("expected payment id on booking, got %q", booked.PaymentID)
	}

	want := []string{"checkSlots", "createOrder", "verify", "createBooking"}
	if len(backend.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, backend.calls)
	}
	for i, call := range want {
		if backend.calls[i] != call {
			t.Fatalf("expected calls %v, got %v", want, backend.calls)
		}
	}
	if len(notifier.successes) == 0 {
		t.Fatalf("expected a success notification")
	}
}

func TestBookDistinctValidationMessages(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	flow, _ := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()

	_, err := flow.Book(ctx, "")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "mode" {
		t.Fatalf("expected mode validation first, got %v", err)
	}

	if err := flow.SelectMode(models.ModeCall); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	_, err = flow.Book(ctx, "")
	if !errors.As(err, &ve) || ve.Field != "date" {
		t.Fatalf("expected date validation, got %v", err)
	}

	if _, err := flow.SelectDate(ctx, "2031-05-20"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	_, err = flow.Book(ctx, "")
	if !errors.As(err, &ve) || ve.Field != "slot" {
		t.Fatalf("expected slot validation, got %v", err)
	}

	// No payment call was made for any validation failure.
	for _, call := range backend.calls {
		if call == "createOrder" {
			t.Fatalf("order created despite validation failure")
		}
	}
}

func TestBookOrderFailureStopsBeforeCheckout(t *testing.T) {
	checkoutCalled := false
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
		createOrderFn: func(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
			return nil, errors.New("order backend down")
		},
	}
	gw := &fakeGateway{
		checkoutFn: func(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
			checkoutCalled = true
			return nil, nil
		},
	}
	flow, _ := newTestFlow(backend, gw)
	ctx := context.Background()
	selectAll(t, flow, ctx)

	_, err := flow.Book(ctx, "")
	var fe *FlowError
	if !errors.As(err, &fe) || fe.Stage != StageOrder {
		t.Fatalf("expected order-stage error, got %v", err)
	}
	if checkoutCalled {
		t.Fatalf("checkout opened despite order failure")
	}
	if NeedsReconciliation(err) {
		t.Fatalf("no payment was captured, reconciliation flag is wrong")
	}
}

func TestBookGatewayFailureSkipsVerifyAndBooking(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	gw := &fakeGateway{
		checkoutFn: func(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
			return nil, &gateway.CheckoutError{Code: "BAD_REQUEST_ERROR", Description: "Payment declined"}
		},
	}
	flow, notifier := newTestFlow(backend, gw)
	ctx := context.Background()
	selectAll(t, flow, ctx)

	_, err := flow.Book(ctx, "")
	var fe *FlowError
	if !errors.As(err, &fe) || fe.Stage != StageCheckout {
		t.Fatalf("expected checkout-stage error, got %v", err)
	}
	for _, call := range backend.calls {
		if call == "verify" || call == "createBooking" {
			t.Fatalf("unexpected %s call after gateway failure", call)
		}
	}
	found := false
	for _, msg := range notifier.errors {
		if msg == "Payment failed: Payment declined" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected gateway-reported reason surfaced, got %v", notifier.errors)
	}
}

func TestBookVerifyFailureCreatesNoBooking(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
		verifyFn: func(ctx context.Context, result models.PaymentResult) error {
			return errors.New("signature mismatch")
		},
	}
	flow, _ := newTestFlow(backend, &fakeGateway{})
	ctx := context.Background()
	selectAll(t, flow, ctx)

	_, err := flow.Book(ctx, "")
	var fe *FlowError
	if !errors.As(err, &fe) || fe.Stage != StageVerify {
		t.Fatalf("expected verify-stage error, got %v", err)
	}
	if !NeedsReconciliation(err) {
		t.Fatalf("captured payment with failed verification must flag reconciliation")
	}
	if fe.PaymentID != "pay_1" {
		t.Fatalf("expected payment id carried for reconciliation, got %q", fe.PaymentID)
	}
	for _, call := range backend.calls {
		if call == "createBooking" {
			t.Fatalf("booking created from failed verification")
		}
	}
}

func TestBookRejectsForeignOrderConfirmation(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	gw := &fakeGateway{
		checkoutFn: func(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
			return &models.PaymentResult{OrderID: "order_other", PaymentID: "pay_2", Signature: "sig"}, nil
		},
	}
	flow, _ := newTestFlow(backend, gw)
	ctx := context.Background()
	selectAll(t, flow, ctx)

	_, err := flow.Book(ctx, "")
	var fe *FlowError
	if !errors.As(err, &fe) || fe.Stage != StageVerify {
		t.Fatalf("expected verify-stage error, got %v", err)
	}
	for _, call := range backend.calls {
		if call == "verify" || call == "createBooking" {
			t.Fatalf("unexpected %s call for a foreign order confirmation", call)
		}
	}
}

func TestBookReentryBlockedWhilePending(t *testing.T) {
	backend := &fakeBackend{
		checkSlotsFn: func(ctx context.Context, lawyerID, date string) ([]string, error) {
			return []string{"09:00-09:30"}, nil
		},
	}
	var flow *Flow
	gw := &fakeGateway{
		checkoutFn: func(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
			// A second submission while the checkout is open must be blocked.
			if _, err := flow.Book(ctx, ""); !errors.Is(err, ErrBookingInProgress) {
				t.Errorf("expected ErrBookingInProgress, got %v", err)
			}
			return &models.PaymentResult{OrderID: order.ID, PaymentID: "pay_1", Signature: "sig"}, nil
		},
	}
	flow, _ = newTestFlow(backend, gw)
	ctx := context.Background()
	selectAll(t, flow, ctx)

	if _, err := flow.Book(ctx, ""); err != nil {
		t.Fatalf("Book: %v", err)
	}
}

func selectAll(t *testing.T, flow *Flow, ctx context.Context) {
	t.Helper()
	if _, err := flow.SelectDate(ctx, "2031-05-20"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if err := flow.SelectSlot("09:00-09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if err := flow.SelectMode(models.ModeVideo); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
}
