package booking

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"lawconnect/models"
	"lawconnect/utils"
)

// Status buckets for list filtering.
const (
	BucketAll       = "all"
	BucketUpcoming  = "upcoming"
	BucketCompleted = "completed"
	BucketCancelled = "cancelled"
)

// Filter narrows a booking list by free text and status bucket.
type Filter struct {
	Query  string
	Bucket string
}

// Apply returns the bookings matching the filter. The text query matches the
// lawyer name or the booking id; the upcoming bucket holds confirmed
// bookings.
func (f Filter) Apply(list []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(list))
	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, b := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(b.LawyerName), q) &&
			!strings.Contains(strings.ToLower(b.ID), q) {
			continue
		}
		switch f.Bucket {
		case "", BucketAll:
		case BucketUpcoming:
			if b.Status != models.StatusConfirmed {
				continue
			}
		case BucketCompleted:
			if b.Status != models.StatusCompleted {
				continue
			}
		case BucketCancelled:
			if b.Status != models.StatusCancelled {
				continue
			}
		default:
			continue
		}
		out = append(out, b)
	}
	return out
}

// LifecycleService manages booking lists and status transitions for both
// roles behind one pagination shape.
type LifecycleService struct {
	backend  BackendAPI
	notifier utils.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]bool
}

func NewLifecycleService(backend BackendAPI, notifier utils.Notifier) *LifecycleService {
	return &LifecycleService{
		backend:  backend,
		notifier: notifier,
		logger:   utils.GetLogger(),
		pending:  make(map[string]bool),
	}
}

// Orders lists the user's bookings, server-paginated.
func (s *LifecycleService) Orders(ctx context.Context, userID string, page, limit int) (*models.Page, error) {
	return s.backend.UserBookings(ctx, userID, page, limit)
}

// Consultations lists a lawyer's bookings through the same page shape. The
// backend endpoint is unpaginated, so the page is cut locally.
func (s *LifecycleService) Consultations(ctx context.Context, lawyerID string, page, limit int) (*models.Page, error) {
	all, err := s.backend.LawyerBookings(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return &models.Page{
		Bookings:   all[start:end],
		Page:       page,
		Limit:      limit,
		TotalCount: len(all),
	}, nil
}

// Cancel requests the one-way cancelled transition and patches the local
// copy optimistically on success.
func (s *LifecycleService) Cancel(ctx context.Context, b *models.Booking) error {
	if b.Status != models.StatusConfirmed {
		return NewValidationError("status", "Only confirmed bookings can be cancelled")
	}
	if !s.begin(b.ID) {
		return ErrBookingInProgress
	}
	defer s.end(b.ID)

	if err := s.backend.CancelBooking(ctx, b.ID); err != nil {
		s.notifier.Error(userMessage(err, "Could not cancel the booking"))
		return err
	}
	b.Status = models.StatusCancelled
	s.notifier.Success("Booking cancelled")
	return nil
}

// Complete requests the lawyer-side completed transition. A second call for
// the same booking while the first is pending is blocked.
func (s *LifecycleService) Complete(ctx context.Context, b *models.Booking) error {
	if b.Status != models.StatusConfirmed {
		return NewValidationError("status", "Only confirmed consultations can be completed")
	}
	if !s.begin(b.ID) {
		return ErrBookingInProgress
	}
	defer s.end(b.ID)

	if err := s.backend.CompleteBooking(ctx, b.ID); err != nil {
		s.notifier.Error(userMessage(err, "Could not mark the consultation complete"))
		return err
	}
	b.Status = models.StatusCompleted
	s.notifier.Success("Consultation marked complete")
	return nil
}

func (s *LifecycleService) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[id] {
		s.logger.Debug("transition already pending", zap.String("booking_id", id))
		return false
	}
	s.pending[id] = true
	return true
}

func (s *LifecycleService) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}
