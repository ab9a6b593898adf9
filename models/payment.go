package models

// PaymentOrder is the ephemeral order descriptor created per booking attempt
// and consumed exactly once by the checkout.
type PaymentOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// OrderRequest is the payment-order creation body.
type OrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	UserID   string  `json:"userId" validate:"required"`
	LawyerID string  `json:"lawyerId" validate:"required"`
	Mode     string  `json:"mode" validate:"required"`
	Slot     string  `json:"slot" validate:"required"`
	Date     string  `json:"date" validate:"required"`
}

// PaymentResult is the signed confirmation produced by the gateway's success
// callback and forwarded verbatim to the verification endpoint.
type PaymentResult struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CheckoutFailure carries the gateway-reported reason when the failure
// callback fires instead of the success one.
type CheckoutFailure struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Prefill holds the payer contact details shown in the checkout.
type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"contact"`
}
