package booking

import (
	"context"
	"errors"
	"testing"

	"lawconnect/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "bk_1", LawyerName: "A. Advocate", Status: models.StatusConfirmed},
		{ID: "bk_2", LawyerName: "B. Barrister", Status: models.StatusCompleted},
		{ID: "bk_3", LawyerName: "A. Advocate", Status: models.StatusCancelled},
		{ID: "bk_4", LawyerName: "C. Counsel", Status: models.StatusConfirmed},
	}
}

func TestFilterBuckets(t *testing.T) {
	list := sampleBookings()

	upcoming := Filter{Bucket: BucketUpcoming}.Apply(list)
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(upcoming))
	}
	completed := Filter{Bucket: BucketCompleted}.Apply(list)
	if len(completed) != 1 || completed[0].ID != "bk_2" {
		t.Fatalf("unexpected completed bucket: %v", completed)
	}
	cancelled := Filter{Bucket: BucketCancelled}.Apply(list)
	if len(cancelled) != 1 || cancelled[0].ID != "bk_3" {
		t.Fatalf("unexpected cancelled bucket: %v", cancelled)
	}
	all := Filter{Bucket: BucketAll}.Apply(list)
	if len(all) != 4 {
		t.Fatalf("expected all 4, got %d", len(all))
	}
}

func TestFilterFreeText(t *testing.T) {
	list := sampleBookings()

	byName := Filter{Query: "advocate"}.Apply(list)
	if len(byName) != 2 {
		t.Fatalf("expected 2 matches by lawyer name, got %d", len(byName))
	}
	byID := Filter{Query: "bk_4"}.Apply(list)
	if len(byID) != 1 || byID[0].ID != "bk_4" {
		t.Fatalf("unexpected match by id: %v", byID)
	}
	both := Filter{Query: "counsel", Bucket: BucketUpcoming}.Apply(list)
	if len(both) != 1 || both[0].ID != "bk_4" {
		t.Fatalf("unexpected combined filter result: %v", both)
	}
}

func TestCancelPatchesLocalCopy(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewLifecycleService(backend, &recordNotifier{})

	b := models.Booking{ID: "bk_1", Status: models.StatusConfirmed}
	if err := svc.Cancel(context.Background(), &b); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Fatalf("expected local status patched to cancelled, got %q", b.Status)
	}

	// The cancelled booking drops out of the upcoming bucket.
	upcoming := Filter{Bucket: BucketUpcoming}.Apply([]models.Booking{b})
	if len(upcoming) != 0 {
		t.Fatalf("cancelled booking still in upcoming bucket")
	}
}

func TestCancelOnlyConfirmed(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewLifecycleService(backend, &recordNotifier{})

	b := models.Booking{ID: "bk_2", Status: models.StatusCompleted}
	err := svc.Cancel(context.Background(), &b)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("no network call expected, got %v", backend.calls)
	}
}

func TestCancelFailureKeepsStatus(t *testing.T) {
	backend := &fakeBackend{
		cancelFn: func(ctx context.Context, bookingID string) error {
			return errors.New("boom")
		},
	}
	notifier := &recordNotifier{}
	svc := NewLifecycleService(backend, notifier)

	b := models.Booking{ID: "bk_1", Status: models.StatusConfirmed}
	if err := svc.Cancel(context.Background(), &b); err == nil {
		t.Fatalf("expected error")
	}
	if b.Status != models.StatusConfirmed {
		t.Fatalf("status patched despite failure: %q", b.Status)
	}
	if len(notifier.errors) == 0 {
		t.Fatalf("expected a user-visible error")
	}
}

func TestCompleteTransition(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewLifecycleService(backend, &recordNotifier{})

	b := models.Booking{ID: "bk_1", Status: models.StatusConfirmed}
	if err := svc.Complete(context.Background(), &b); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if b.Status != models.StatusCompleted {
		t.Fatalf("expected completed, got %q", b.Status)
	}
	completed := Filter{Bucket: BucketCompleted}.Apply([]models.Booking{b})
	if len(completed) != 1 {
		t.Fatalf("completed booking not in completed bucket")
	}
}

func TestCompleteSecondClickBlockedWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{
		completeFn: func(ctx context.Context, bookingID string) error {
			close(started)
			<-release
			return nil
		},
	}
	svc := NewLifecycleService(backend, &recordNotifier{})

	b := models.Booking{ID: "bk_1", Status: models.StatusConfirmed}
	done := make(chan error, 1)
	go func() {
		done <- svc.Complete(context.Background(), &b)
	}()
	<-started

	second := models.Booking{ID: "bk_1", Status: models.StatusConfirmed}
	if err := svc.Complete(context.Background(), &second); !errors.Is(err, ErrBookingInProgress) {
		t.Fatalf("expected ErrBookingInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Complete: %v", err)
	}
}

func TestConsultationsLocalPaging(t *testing.T) {
	var all []models.Booking
	for i := 0; i < 25; i++ {
		all = append(all, models.Booking{ID: string(rune('a' + i)), Status: models.StatusConfirmed})
	}
	backend := &fakeBackend{
		lawyerOrdersFn: func(ctx context.Context, lawyerID string) ([]models.Booking, error) {
			return all, nil
		},
	}
	svc := NewLifecycleService(backend, &recordNotifier{})

	page, err := svc.Consultations(context.Background(), "lw_1", 3, 10)
	if err != nil {
		t.Fatalf("Consultations: %v", err)
	}
	if page.TotalCount != 25 {
		t.Fatalf("expected total 25, got %d", page.TotalCount)
	}
	if len(page.Bookings) != 5 {
		t.Fatalf("expected last page of 5, got %d", len(page.Bookings))
	}

	beyond, err := svc.Consultations(context.Background(), "lw_1", 5, 10)
	if err != nil {
		t.Fatalf("Consultations: %v", err)
	}
	if len(beyond.Bookings) != 0 {
		t.Fatalf("expected empty page beyond the end, got %d", len(beyond.Bookings))
	}
}
