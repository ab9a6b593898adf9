// Package dashboard loads the initial data for the role dashboards. The
// independent fetches run concurrently and tolerate partial failure: a
// failed fetch is logged and its section left empty so the rest of the page
// still populates.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lawconnect/models"
	"lawconnect/utils"
)

// BackendAPI is the slice of the REST client the dashboards need.
type BackendAPI interface {
	UserBookings(ctx context.Context, userID string, page, limit int) (*models.Page, error)
	LawyerBookings(ctx context.Context, lawyerID string) ([]models.Booking, error)
	LawyerReviews(ctx context.Context, lawyerID string) ([]models.Review, error)
}

// UserDashboard is the user landing page's data.
type UserDashboard struct {
	Upcoming []models.Booking
	Bookings []models.Booking
}

// LawyerDashboard is the lawyer landing page's data.
type LawyerDashboard struct {
	Consultations []models.Booking
	Reviews       []models.Review
}

type Service struct {
	backend BackendAPI
	logger  *zap.Logger
}

func NewService(backend BackendAPI) *Service {
	return &Service{backend: backend, logger: utils.GetLogger()}
}

// LoadUser fetches upcoming consultations and recent bookings concurrently.
func (s *Service) LoadUser(ctx context.Context, userID string) *UserDashboard {
	dash := &UserDashboard{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.backend.UserBookings(ctx, userID, 1, 50)
		if err != nil {
			s.logger.Warn("upcoming consultations fetch failed", zap.Error(err))
			return nil
		}
		today := time.Now().Format("2006-01-02")
		for _, b := range page.Bookings {
			if b.Status == models.StatusConfirmed && b.Date >= today {
				dash.Upcoming = append(dash.Upcoming, b)
			}
		}
		return nil
	})

	g.Go(func() error {
		page, err := s.backend.UserBookings(ctx, userID, 1, 10)
		if err != nil {
			s.logger.Warn("bookings fetch failed", zap.Error(err))
			return nil
		}
		dash.Bookings = page.Bookings
		return nil
	})

	_ = g.Wait()
	return dash
}

// LoadLawyer fetches consultations and reviews concurrently.
func (s *Service) LoadLawyer(ctx context.Context, lawyerID string) *LawyerDashboard {
	dash := &LawyerDashboard{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bookings, err := s.backend.LawyerBookings(ctx, lawyerID)
		if err != nil {
			s.logger.Warn("consultations fetch failed", zap.Error(err))
			return nil
		}
		dash.Consultations = bookings
		return nil
	})

	g.Go(func() error {
		reviews, err := s.backend.LawyerReviews(ctx, lawyerID)
		if err != nil {
			s.logger.Warn("reviews fetch failed", zap.Error(err))
			return nil
		}
		dash.Reviews = reviews
		return nil
	})

	_ = g.Wait()
	return dash
}
