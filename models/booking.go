package models

import "time"

// Booking lifecycle statuses. Transitions are requested by the client but
// authoritative on the backend: confirmed -> completed | cancelled.
const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking represents a consultation booking record.
type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	LawyerID    string    `json:"lawyerId"`
	LawyerName  string    `json:"lawyerName,omitempty"`
	Date        string    `json:"date"` // "YYYY-MM-DD"
	Slot        string    `json:"slot"` // "HH:MM-HH:MM"
	Mode        string    `json:"mode"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	PaymentID   string    `json:"paymentId,omitempty"`
	PaymentMode string    `json:"paymentMode,omitempty"`
	CaseDetails string    `json:"caseDetails,omitempty"`
	Documents   []string  `json:"documents,omitempty"`
	Review      *Review   `json:"review,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// BookingRequest is the booking-creation body sent after payment verification.
type BookingRequest struct {
	UserID      string `json:"userId" validate:"required"`
	LawyerID    string `json:"lawyerId" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Slot        string `json:"slot" validate:"required"`
	Mode        string `json:"mode" validate:"required"`
	PaymentID   string `json:"paymentId" validate:"required"`
	PaymentMode string `json:"paymentMode" validate:"required"`
	CaseDetails string `json:"caseDetails,omitempty"`
}

// Page is one page of a server-paginated booking list.
type Page struct {
	Bookings   []Booking `json:"bookings"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalCount int       `json:"totalCount"`
}
