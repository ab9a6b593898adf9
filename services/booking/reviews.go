package booking

import (
	"context"

	"go.uber.org/zap"

	"lawconnect/models"
	"lawconnect/utils"
)

// ReviewService handles review submission for completed bookings.
type ReviewService struct {
	backend  BackendAPI
	notifier utils.Notifier
	logger   *zap.Logger
}

func NewReviewService(backend BackendAPI, notifier utils.Notifier) *ReviewService {
	return &ReviewService{backend: backend, notifier: notifier, logger: utils.GetLogger()}
}

// Reviewed returns the set of booking ids the user has already reviewed.
func (s *ReviewService) Reviewed(ctx context.Context, userID string) (map[string]bool, error) {
	reviews, err := s.backend.UserReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		seen[r.BookingID] = true
	}
	return seen, nil
}

// Submit validates and submits a review. The duplicate check is best-effort:
// it blocks a second submission once any review for the booking appears in
// the user's fetched review set, but the backend enforces nothing stronger.
func (s *ReviewService) Submit(ctx context.Context, booking models.Booking, rating int, comment string) (*models.Review, error) {
	if booking.Status != models.StatusCompleted {
		return nil, NewValidationError("status", "Only completed consultations can be reviewed")
	}
	if rating < 1 || rating > 5 {
		s.notifier.Error("Please select a rating")
		return nil, NewValidationError("rating", "Please select a rating")
	}
	if comment == "" {
		s.notifier.Error("Please write a comment")
		return nil, NewValidationError("comment", "Please write a comment")
	}

	seen, err := s.Reviewed(ctx, booking.UserID)
	if err != nil {
		s.notifier.Error(userMessage(err, "Could not check existing reviews"))
		return nil, err
	}
	if seen[booking.ID] {
		s.notifier.Error("You have already reviewed this consultation")
		return nil, NewValidationError("booking", "You have already reviewed this consultation")
	}

	review, err := s.backend.SubmitReview(ctx, models.ReviewRequest{
		BookingID: booking.ID,
		LawyerID:  booking.LawyerID,
		UserID:    booking.UserID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		s.notifier.Error(userMessage(err, "Could not submit the review"))
		return nil, err
	}
	s.logger.Info("review submitted",
		zap.String("booking_id", booking.ID),
		zap.Int("rating", rating))
	s.notifier.Success("Review submitted")
	return review, nil
}
