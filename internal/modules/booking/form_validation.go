package booking

import (
	"regexp"
	"strings"
)

// ValidationErrors maps a field name to a human-readable message. Returned
// as data so the caller can re-render the current step with inline messages;
// validation never produces a Go error.
type ValidationErrors map[string]string

type fieldKind int

const (
	kindText fieldKind = iota
	kindEmail
	kindPhone
	kindNumber
)

// fieldSpec describes one form field: which step owns it, whether an empty
// value blocks Advance, and whether editing it moves the price.
type fieldSpec struct {
	name     string
	label    string
	kind     fieldKind
	required bool
	pricing  bool
}

var stepFields = map[Step][]fieldSpec{
	StepShipmentContact: {
		{name: "firstName", label: "First name", required: true},
		{name: "lastName", label: "Last name", required: true},
		{name: "email", label: "Email address", kind: kindEmail, required: true},
		{name: "phone", label: "Phone number", kind: kindPhone, required: true},
		{name: "shipmentType", label: "Shipment type", required: true, pricing: true},
		{name: "weightKg", label: "Weight", kind: kindNumber, required: true, pricing: true},
		{name: "declaredValue", label: "Declared value", kind: kindNumber, required: true, pricing: true},
		{name: "itemDescription", label: "Item description"},
	},
	StepPickup: {
		{name: "pickupAddress", label: "Pickup address", required: true},
		{name: "pickupRegion", label: "Pickup county", required: true, pricing: true},
		{name: "pickupDate", label: "Pickup date", required: true},
	},
	StepDelivery: {
		{name: "deliveryAddress", label: "Delivery address", required: true},
		{name: "deliveryRegion", label: "Delivery county", required: true, pricing: true},
		{name: "recipientName", label: "Recipient name", required: true},
		{name: "recipientPhone", label: "Recipient phone", kind: kindPhone, required: true},
		{name: "deliveryOption", label: "Delivery option", pricing: true},
		{name: "isExpress", label: "Express handling", pricing: true},
		{name: "specialRequirements", label: "Special requirements", pricing: true},
	},
	StepReviewPayment: {
		{name: "paymentMethod", label: "Payment method", required: true},
		{name: "mpesaCode", label: "M-Pesa confirmation code"},
		{name: "termsAccepted", label: "Terms and conditions"},
	},
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// validPhone enforces the Kenyan mobile format: after stripping everything
// that is not a digit, exactly 10 digits starting with 07.
func validPhone(raw string) bool {
	digits := nonDigits.ReplaceAllString(raw, "")
	return len(digits) == 10 && strings.HasPrefix(digits, "07")
}

// validateFields runs the rules for one step's field list against the
// accumulated entries.
func validateFields(specs []fieldSpec, fields map[string]string) ValidationErrors {
	errs := ValidationErrors{}
	for _, spec := range specs {
		value := strings.TrimSpace(fields[spec.name])
		if value == "" {
			if spec.required {
				errs[spec.name] = spec.label + " is required"
			}
			continue
		}
		switch spec.kind {
		case kindEmail:
			if !emailPattern.MatchString(value) {
				errs[spec.name] = "Enter a valid email address"
			}
		case kindPhone:
			if !validPhone(value) {
				errs[spec.name] = spec.label + " must be a 10-digit number starting with 07"
			}
		}
	}
	return errs
}

// pricingFields is the set of field names whose edits trigger an immediate
// quote recomputation.
var pricingFields = func() map[string]bool {
	m := make(map[string]bool)
	for _, specs := range stepFields {
		for _, spec := range specs {
			if spec.pricing {
				m[spec.name] = true
			}
		}
	}
	return m
}()
