package api

import (
	"context"
	"fmt"
	"net/http"

	"lawconnect/models"
)

// UserBookings lists the user's bookings, server-paginated.
func (c *Client) UserBookings(ctx context.Context, userID string, page, limit int) (*models.Page, error) {
	var resp models.Page
	path := fmt.Sprintf("/booking/allOrders/%s?page=%d&limit=%d", userID, page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Page == 0 {
		resp.Page = page
	}
	if resp.Limit == 0 {
		resp.Limit = limit
	}
	return &resp, nil
}

// LawyerBookings lists all consultations booked with a lawyer. The endpoint
// is unpaginated; a 404 means the lawyer simply has no consultations yet.
func (c *Client) LawyerBookings(ctx context.Context, lawyerID string) ([]models.Booking, error) {
	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	err := c.do(ctx, http.MethodGet, "/booking/lawyer_allorders/"+lawyerID, nil, &resp)
	if err != nil {
		if IsNotFound(err) {
			return []models.Booking{}, nil
		}
		return nil, err
	}
	return resp.Bookings, nil
}

// GetBooking fetches a single booking.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodGet, "/booking/"+bookingID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}

// CancelBooking requests the confirmed -> cancelled transition.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodPatch, "/booking/"+bookingID+"/cancel", nil, nil)
}

// CompleteBooking requests the confirmed -> completed transition (lawyer only).
func (c *Client) CompleteBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodPatch, "/booking/"+bookingID+"/complete", nil, nil)
}

// CreateBooking persists a consultation booking after verified payment.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/booking/book", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}
