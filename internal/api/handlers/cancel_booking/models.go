package cancel_booking

// CancelBookingRequest HTTP request model (тело опционально)
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
