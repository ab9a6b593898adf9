package booking

import (
	"context"

	"lawconnect/models"
)

// BackendAPI is the slice of the REST client the booking services depend on.
// *api.Client satisfies it; tests substitute fakes.
type BackendAPI interface {
	CheckSlots(ctx context.Context, lawyerID, date string) ([]string, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, result models.PaymentResult) error
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)

	UserBookings(ctx context.Context, userID string, page, limit int) (*models.Page, error)
	LawyerBookings(ctx context.Context, lawyerID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	CompleteBooking(ctx context.Context, bookingID string) error

	UserReviews(ctx context.Context, userID string) ([]models.Review, error)
	SubmitReview(ctx context.Context, req models.ReviewRequest) (*models.Review, error)
}
