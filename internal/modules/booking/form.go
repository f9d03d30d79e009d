package booking

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/modules/quote"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
)

// Step identifies one screen of the booking form. The sequence is linear:
// no branching, no skipping.
type Step int

const (
	StepShipmentContact Step = iota
	StepPickup
	StepDelivery
	StepReviewPayment
)

func (s Step) String() string {
	switch s {
	case StepShipmentContact:
		return "shipment-contact"
	case StepPickup:
		return "pickup"
	case StepDelivery:
		return "delivery"
	case StepReviewPayment:
		return "review-payment"
	}
	return "unknown"
}

// Form is the in-progress booking for one customer session. One session owns
// one form; the engine still locks every entry point because a session can
// reach the service from concurrent requests (a browser retry, two tabs).
//
// Field values survive every rejected transition — nothing here ever
// discards user input on error.
type Form struct {
	mu sync.Mutex

	table *rates.Table

	currentStep Step
	fields      map[string]string
	errors      ValidationErrors

	// Generated once, lazily, on first entry into the review step, and
	// reused for every later submit attempt in this session.
	trackingNumber   string
	bookingReference string

	quote models.CostBreakdown
}

// NewForm starts a fresh booking form on the first step with a quote for the
// empty shipment (base parcel rate, insurance floor, standard delivery).
func NewForm(table *rates.Table) *Form {
	f := &Form{
		table:       table,
		currentStep: StepShipmentContact,
		fields:      make(map[string]string),
		errors:      ValidationErrors{},
	}
	f.quote = quote.Compute(f.shipmentInput(), f.table)
	return f
}

// ApplyProfile pre-populates the contact fields from a saved user profile.
// Treated as ordinary field updates, so later edits behave identically.
func (f *Form) ApplyProfile(p models.UserProfile) {
	pairs := map[string]string{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"phone":     p.Phone,
		"email":     p.Email,
	}
	for name, value := range pairs {
		if value != "" {
			f.UpdateField(name, value)
		}
	}
}

// UpdateField records one field edit. A non-empty value clears any pending
// error on that field; edits to pricing fields recompute the quote
// immediately so the preview never lags the form.
func (f *Form) UpdateField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields[name] = value
	if strings.TrimSpace(value) != "" {
		delete(f.errors, name)
	}
	if pricingFields[name] {
		f.quote = quote.Compute(f.shipmentInput(), f.table)
	}
}

// Advance validates the current step and, when clean, moves to the next one.
// A validation failure leaves the step unchanged and publishes the error map
// for inline display. Advancing from the review step is a no-op — the form
// finishes through Submit, not Advance.
//
// Entering the review step recomputes the quote from the final field values
// and generates the tracking number and booking reference if this session
// does not have them yet.
func (f *Form) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := validateFields(stepFields[f.currentStep], f.fields)
	if len(errs) > 0 {
		f.errors = errs
		return false
	}
	f.errors = ValidationErrors{}

	if f.currentStep == StepReviewPayment {
		return false
	}

	f.currentStep++
	if f.currentStep == StepReviewPayment {
		f.quote = quote.Compute(f.shipmentInput(), f.table)
		f.ensureReferences(time.Now())
	}
	return true
}

// Retreat moves back one step without validating; already at the first step
// it does nothing. Going back never loses entered data.
func (f *Form) Retreat() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.currentStep > StepShipmentContact {
		f.currentStep--
	}
}

// ensureReferences generates the display codes once per session. Callers
// hold f.mu.
func (f *Form) ensureReferences(now time.Time) {
	if f.trackingNumber == "" {
		f.trackingNumber = newTrackingNumber(now)
	}
	if f.bookingReference == "" {
		f.bookingReference = newBookingReference(now)
	}
}

// validateAll re-runs every step's rules, merging the results. Used as the
// final gate before submission to catch state gone stale since the step was
// passed. Callers hold f.mu.
func (f *Form) validateAll() ValidationErrors {
	merged := ValidationErrors{}
	for step := StepShipmentContact; step <= StepReviewPayment; step++ {
		for name, msg := range validateFields(stepFields[step], f.fields) {
			merged[name] = msg
		}
	}
	return merged
}

// shipmentInput derives the typed pricing input from the raw field map.
// Unparseable numbers and negative entries degrade to zero rather than
// erroring; the step validation is what tells the user. Callers hold f.mu
// (or own the form exclusively, as NewForm does).
func (f *Form) shipmentInput() models.ShipmentInput {
	input := models.ShipmentInput{
		ShipmentType:   models.ShipmentType(strings.TrimSpace(f.fields["shipmentType"])),
		PickupRegion:   strings.TrimSpace(f.fields["pickupRegion"]),
		DeliveryRegion: strings.TrimSpace(f.fields["deliveryRegion"]),
		DeliveryOption: models.DeliveryOption(strings.TrimSpace(f.fields["deliveryOption"])),
	}
	if w, err := strconv.ParseFloat(strings.TrimSpace(f.fields["weightKg"]), 64); err == nil && w > 0 {
		input.WeightKg = w
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.fields["declaredValue"]), 64); err == nil && v > 0 {
		input.DeclaredValue = models.MoneyFromFloat(v)
	}
	input.IsExpress = parseFlag(f.fields["isExpress"])
	for _, raw := range strings.Split(f.fields["specialRequirements"], ",") {
		if req := strings.TrimSpace(raw); req != "" {
			input.SpecialRequirements = append(input.SpecialRequirements, models.SpecialRequirement(req))
		}
	}
	return input
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// CurrentStep returns the step the form is on.
func (f *Form) CurrentStep() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentStep
}

// Field returns one raw field value.
func (f *Form) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

// Fields returns a copy of the accumulated entries.
func (f *Form) Fields() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the error map from the last rejected transition.
func (f *Form) Errors() ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(ValidationErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Quote returns the current itemized price.
func (f *Form) Quote() models.CostBreakdown {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quote
}

// TrackingNumber is empty until the form first reaches the review step.
func (f *Form) TrackingNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trackingNumber
}

// BookingReference is empty until the form first reaches the review step.
func (f *Form) BookingReference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookingReference
}
