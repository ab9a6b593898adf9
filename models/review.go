package models

import "time"

// Review is a rating left for a lawyer, linked to exactly one booking.
// At most one review per booking; the client checks its fetched review set
// before allowing submission.
type Review struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	LawyerID  string    `json:"lawyerId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ReviewRequest is the review-submission body.
type ReviewRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	LawyerID  string `json:"lawyerId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}
