package booking

import (
	"strings"
	"time"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// Submit freezes the validated form into a BookingRecord. The preconditions
// are checked in order, each with its own rejection:
//
//  1. the form must be on the review step          -> models.ErrNotReady
//  2. the terms flag must be accepted              -> models.ErrTermsNotAccepted
//  3. the M-Pesa transaction code must be present  -> models.ErrMissingPaymentCode
//  4. every step must still validate clean         -> ValidationErrors
//
// The shape of the transaction code is all that is checked; verifying it
// against the gateway belongs to the payment collaborator. A rejection of
// any kind leaves the form, its fields and its generated references exactly
// as they were, so the user corrects and resubmits with the same codes.
func (f *Form) Submit(confirm models.PaymentConfirmation) (*models.BookingRecord, ValidationErrors, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.currentStep != StepReviewPayment {
		return nil, nil, models.ErrNotReady
	}

	if !confirm.TermsAccepted && !parseFlag(f.fields["termsAccepted"]) {
		return nil, nil, models.ErrTermsNotAccepted
	}

	code := strings.TrimSpace(confirm.ExternalTransactionReference)
	if code == "" {
		code = strings.TrimSpace(f.fields["mpesaCode"])
	}
	if code == "" {
		return nil, nil, models.ErrMissingPaymentCode
	}

	if errs := f.validateAll(); len(errs) > 0 {
		f.errors = errs
		return nil, errs, nil
	}

	// The references were generated on first entry into this step; keep
	// the guard for a form driven directly rather than through Advance.
	now := time.Now().UTC()
	f.ensureReferences(now)

	method := strings.TrimSpace(confirm.Method)
	if method == "" {
		method = strings.TrimSpace(f.fields["paymentMethod"])
	}

	record := &models.BookingRecord{
		TrackingNumber:   f.trackingNumber,
		BookingReference: f.bookingReference,
		Shipment:         f.shipmentInput(),
		Quote:            f.quote,

		SenderFirstName: strings.TrimSpace(f.fields["firstName"]),
		SenderLastName:  strings.TrimSpace(f.fields["lastName"]),
		SenderEmail:     strings.TrimSpace(f.fields["email"]),
		SenderPhone:     strings.TrimSpace(f.fields["phone"]),

		PickupAddress: strings.TrimSpace(f.fields["pickupAddress"]),
		PickupRegion:  strings.TrimSpace(f.fields["pickupRegion"]),
		PickupDate:    strings.TrimSpace(f.fields["pickupDate"]),

		DeliveryAddress: strings.TrimSpace(f.fields["deliveryAddress"]),
		DeliveryRegion:  strings.TrimSpace(f.fields["deliveryRegion"]),
		RecipientName:   strings.TrimSpace(f.fields["recipientName"]),
		RecipientPhone:  strings.TrimSpace(f.fields["recipientPhone"]),

		ItemDescription: strings.TrimSpace(f.fields["itemDescription"]),

		PaymentMethod:    method,
		PaymentReference: code,

		Status:    models.StatusPaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return record, nil, nil
}
