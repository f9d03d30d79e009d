package models

import "time"

// Booking statuses. The engine only ever writes StatusPaid; the remaining
// values belong to the order-management side and are accepted on admin
// updates so the vocabulary stays in one place.
const (
	StatusPending        = "pending"
	StatusPaid           = "paid"
	StatusProcessing     = "processing"
	StatusInTransit      = "in-transit"
	StatusOutForDelivery = "out-for-delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// KnownStatus reports whether s is part of the booking status vocabulary.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// BookingRecord is the frozen output of a successful submission. Immutable
// once stored; later status transitions go through the admin update path.
type BookingRecord struct {
	ID               string        `json:"id"`
	TrackingNumber   string        `json:"tracking_number"`
	BookingReference string        `json:"booking_reference"`
	UserID           string        `json:"user_id,omitempty"`
	Shipment         ShipmentInput `json:"shipment"`
	Quote            CostBreakdown `json:"quote"`

	SenderFirstName string `json:"sender_first_name"`
	SenderLastName  string `json:"sender_last_name"`
	SenderEmail     string `json:"sender_email"`
	SenderPhone     string `json:"sender_phone"`

	PickupAddress string `json:"pickup_address"`
	PickupRegion  string `json:"pickup_region"`
	PickupDate    string `json:"pickup_date"`

	DeliveryAddress string `json:"delivery_address"`
	DeliveryRegion  string `json:"delivery_region"`
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`

	ItemDescription string `json:"item_description,omitempty"`

	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile is the optional pre-fill block supplied when a session opens.
type UserProfile struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// OpenSessionRequest starts a booking form session.
type OpenSessionRequest struct {
	Profile *UserProfile `json:"profile,omitempty"`
}

// UpdateFieldsRequest applies one or more field edits to the current form.
type UpdateFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// PaymentConfirmation carries the externally-entered payment details checked
// at submission. The transaction code is never verified against the gateway
// here; presence and shape only.
type PaymentConfirmation struct {
	Method                       string `json:"method" validate:"required,oneof=mpesa"`
	ExternalTransactionReference string `json:"transaction_reference"`
	TermsAccepted                bool   `json:"terms_accepted"`
}

// AdminUpdateBookingRequest is the admin-side status transition payload.
type AdminUpdateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid processing in-transit out-for-delivery delivered cancelled"`
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
