package booking

import (
	"strings"
	"testing"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
)

func fillShipmentContact(f *Form) {
	f.UpdateField("firstName", "Amina")
	f.UpdateField("lastName", "Odhiambo")
	f.UpdateField("email", "amina@example.com")
	f.UpdateField("phone", "0712345678")
	f.UpdateField("shipmentType", "parcel")
	f.UpdateField("weightKg", "10")
	f.UpdateField("declaredValue", "5000")
}

func fillPickup(f *Form) {
	f.UpdateField("pickupAddress", "Moi Avenue 12")
	f.UpdateField("pickupRegion", "Nairobi")
	f.UpdateField("pickupDate", "2026-09-01")
}

func fillDelivery(f *Form) {
	f.UpdateField("deliveryAddress", "Nyali Road 8")
	f.UpdateField("deliveryRegion", "Mombasa")
	f.UpdateField("recipientName", "Juma Kariuki")
	f.UpdateField("recipientPhone", "0798765432")
	f.UpdateField("deliveryOption", "standard")
}

// advanceToReview drives a fully-filled form onto the review step.
func advanceToReview(t *testing.T, f *Form) {
	t.Helper()
	fillShipmentContact(f)
	fillPickup(f)
	fillDelivery(f)
	f.UpdateField("paymentMethod", "mpesa")
	for i := 0; i < 3; i++ {
		if !f.Advance() {
			t.Fatalf("Advance from %s rejected: %v", f.CurrentStep(), f.Errors())
		}
	}
	if f.CurrentStep() != StepReviewPayment {
		t.Fatalf("after three advances step = %s; want review-payment", f.CurrentStep())
	}
}

func TestPhoneValidation(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
	}{
		{"0712345678", true},
		{"07 1234 5678", true},
		{"0798-765-432", false}, // only 9 digits
		{"12345", false},
		{"0812345678", false}, // wrong carrier prefix
		{"+254712345678", false},
		{"", false},
	}
	for _, c := range cases {
		if got := validPhone(c.raw); got != c.valid {
			t.Errorf("validPhone(%q) = %v; want %v", c.raw, got, c.valid)
		}
	}
}

func TestAdvanceBlockedByEmptyRequiredFields(t *testing.T) {
	f := NewForm(rates.Default())

	if f.Advance() {
		t.Fatal("Advance moved past an entirely empty first step")
	}
	if f.CurrentStep() != StepShipmentContact {
		t.Errorf("step after rejected Advance = %s; want shipment-contact", f.CurrentStep())
	}

	errs := f.Errors()
	for _, name := range []string{"firstName", "lastName", "email", "phone", "shipmentType", "weightKg", "declaredValue"} {
		if errs[name] == "" {
			t.Errorf("no validation message for required field %q", name)
		}
	}
	// Whitespace does not count as filled in.
	f.UpdateField("firstName", "   ")
	if f.Advance() {
		t.Error("Advance accepted whitespace-only required field")
	}
}

func TestAdvanceEmailAndPhoneRules(t *testing.T) {
	f := NewForm(rates.Default())
	fillShipmentContact(f)
	f.UpdateField("email", "not-an-email")
	f.UpdateField("phone", "0812345678")

	if f.Advance() {
		t.Fatal("Advance accepted malformed email and phone")
	}
	errs := f.Errors()
	if errs["email"] == "" {
		t.Error("no message for malformed email")
	}
	if errs["phone"] == "" {
		t.Error("no message for wrong-prefix phone")
	}

	f.UpdateField("email", "amina@example.com")
	f.UpdateField("phone", "0712345678")
	if !f.Advance() {
		t.Errorf("Advance rejected corrected step: %v", f.Errors())
	}
}

func TestUpdateFieldClearsErrorAndReprices(t *testing.T) {
	f := NewForm(rates.Default())
	f.Advance() // populate errors

	if f.Errors()["firstName"] == "" {
		t.Fatal("expected a firstName error to clear")
	}
	f.UpdateField("firstName", "Amina")
	if f.Errors()["firstName"] != "" {
		t.Error("non-empty update did not clear the field error")
	}

	before := f.Quote().Total
	f.UpdateField("weightKg", "10")
	after := f.Quote().Total
	if after != before+models.Shillings(500) {
		t.Errorf("quote after 10 kg = %s; want %s", after, before+models.Shillings(500))
	}

	// Editing a non-pricing field leaves the quote alone.
	f.UpdateField("itemDescription", "ceramic bowls")
	if f.Quote().Total != after {
		t.Error("non-pricing field edit changed the quote")
	}
}

func TestRetreatBoundaries(t *testing.T) {
	f := NewForm(rates.Default())

	f.Retreat()
	if f.CurrentStep() != StepShipmentContact {
		t.Errorf("Retreat on first step moved to %s", f.CurrentStep())
	}

	fillShipmentContact(f)
	if !f.Advance() {
		t.Fatalf("Advance rejected: %v", f.Errors())
	}
	f.Retreat()
	if f.CurrentStep() != StepShipmentContact {
		t.Errorf("step after Retreat = %s; want shipment-contact", f.CurrentStep())
	}
	if f.Field("firstName") != "Amina" {
		t.Error("Retreat discarded entered data")
	}
}

func TestReviewStepQuoteAndReferences(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	if got := f.Quote().Total; got != models.Shillings(8875) {
		t.Errorf("review quote total = %s; want KES 8875.00", got)
	}

	tn := f.TrackingNumber()
	ref := f.BookingReference()
	if !strings.HasPrefix(tn, "MS") || len(tn) != 14 {
		t.Errorf("tracking number %q; want MS + 12 digits", tn)
	}
	if !strings.HasPrefix(ref, "BK") || len(ref) != 11 {
		t.Errorf("booking reference %q; want BK + 9 digits", ref)
	}

	// Leaving and re-entering the review step keeps the same codes; the
	// customer has already seen them.
	f.Retreat()
	if !f.Advance() {
		t.Fatalf("re-entering review rejected: %v", f.Errors())
	}
	if f.TrackingNumber() != tn || f.BookingReference() != ref {
		t.Error("references regenerated on re-entering the review step")
	}
}

func TestAdvanceOnReviewIsNoOp(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	if f.Advance() {
		t.Error("Advance on the review step reported a move")
	}
	if f.CurrentStep() != StepReviewPayment {
		t.Errorf("step after Advance on review = %s", f.CurrentStep())
	}
}

func TestSubmitRejectedBeforeReview(t *testing.T) {
	f := NewForm(rates.Default())
	fillShipmentContact(f)

	confirm := models.PaymentConfirmation{
		Method:                       "mpesa",
		ExternalTransactionReference: "QGH7TK61SV",
		TermsAccepted:                true,
	}
	record, _, err := f.Submit(confirm)
	if err != models.ErrNotReady {
		t.Errorf("Submit from first step error = %v; want ErrNotReady", err)
	}
	if record != nil {
		t.Error("Submit before review produced a record")
	}
}

func TestSubmitRejectsUnacceptedTerms(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	confirm := models.PaymentConfirmation{
		Method:                       "mpesa",
		ExternalTransactionReference: "QGH7TK61SV",
		TermsAccepted:                false,
	}
	if _, _, err := f.Submit(confirm); err != models.ErrTermsNotAccepted {
		t.Errorf("Submit error = %v; want ErrTermsNotAccepted", err)
	}
	// Rejection keeps everything the user typed.
	if f.Field("firstName") != "Amina" || f.TrackingNumber() == "" {
		t.Error("rejected submit discarded form state")
	}
}

func TestSubmitRejectsMissingPaymentCode(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	confirm := models.PaymentConfirmation{Method: "mpesa", TermsAccepted: true}
	if _, _, err := f.Submit(confirm); err != models.ErrMissingPaymentCode {
		t.Errorf("Submit error = %v; want ErrMissingPaymentCode", err)
	}

	// The code typed into the form counts as present.
	f.UpdateField("mpesaCode", "QGH7TK61SV")
	if _, _, err := f.Submit(confirm); err != nil {
		t.Errorf("Submit with form-entered code error = %v", err)
	}
}

func TestSubmitRevalidatesAllSteps(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	// Stale state: a required field emptied after its step was passed.
	f.UpdateField("email", "")

	confirm := models.PaymentConfirmation{
		Method:                       "mpesa",
		ExternalTransactionReference: "QGH7TK61SV",
		TermsAccepted:                true,
	}
	record, fieldErrs, err := f.Submit(confirm)
	if err != nil {
		t.Fatalf("Submit error = %v; want field errors instead", err)
	}
	if record != nil {
		t.Fatal("Submit with stale invalid state produced a record")
	}
	if fieldErrs["email"] == "" {
		t.Errorf("field errors = %v; want an email message", fieldErrs)
	}
}

func TestSubmitFreezesRecord(t *testing.T) {
	f := NewForm(rates.Default())
	advanceToReview(t, f)

	confirm := models.PaymentConfirmation{
		Method:                       "mpesa",
		ExternalTransactionReference: "QGH7TK61SV",
		TermsAccepted:                true,
	}
	record, fieldErrs, err := f.Submit(confirm)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("Submit failed: err=%v errs=%v", err, fieldErrs)
	}

	if record.Status != models.StatusPaid {
		t.Errorf("record status = %q; want paid", record.Status)
	}
	if record.Quote.Total != models.Shillings(8875) {
		t.Errorf("frozen total = %s; want KES 8875.00", record.Quote.Total)
	}
	if record.TrackingNumber != f.TrackingNumber() {
		t.Error("record tracking number differs from the session's")
	}
	if record.Shipment.ShipmentType != models.ShipmentParcel || record.Shipment.WeightKg != 10 {
		t.Errorf("frozen shipment = %+v", record.Shipment)
	}
	if record.PaymentReference != "QGH7TK61SV" {
		t.Errorf("payment reference = %q", record.PaymentReference)
	}
	if record.CreatedAt.IsZero() || record.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped")
	}

	// Submitting again yields the same identifiers.
	again, _, err := f.Submit(confirm)
	if err != nil {
		t.Fatalf("second Submit error = %v", err)
	}
	if again.TrackingNumber != record.TrackingNumber || again.BookingReference != record.BookingReference {
		t.Error("resubmission regenerated references")
	}
}

func TestApplyProfilePrefillsContactFields(t *testing.T) {
	f := NewForm(rates.Default())
	f.ApplyProfile(models.UserProfile{
		FirstName: "Amina",
		LastName:  "Odhiambo",
		Phone:     "0712345678",
		Email:     "amina@example.com",
	})

	if f.Field("firstName") != "Amina" || f.Field("email") != "amina@example.com" {
		t.Errorf("prefilled fields = %v", f.Fields())
	}
	// Empty profile entries must not blank out anything.
	f.ApplyProfile(models.UserProfile{})
	if f.Field("phone") != "0712345678" {
		t.Error("empty profile overwrote an existing field")
	}
}
