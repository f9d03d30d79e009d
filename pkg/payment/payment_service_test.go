package payment

import (
	"context"
	"testing"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

func TestConfirmPaymentCodeShape(t *testing.T) {
	svc := NewMpesaService()
	ctx := context.Background()
	amount := models.Shillings(8875)

	valid := []string{"QGH7TK61SV", "qgh7tk61sv", "ABC1234567"}
	for _, code := range valid {
		if err := svc.ConfirmPayment(ctx, code, amount); err != nil {
			t.Errorf("ConfirmPayment(%q) error: %v", code, err)
		}
	}

	invalid := []string{"", "SHORT", "QGH7TK61SVX", "QGH7 K61SV", "QGH7-K61SV"}
	for _, code := range invalid {
		if err := svc.ConfirmPayment(ctx, code, amount); err == nil {
			t.Errorf("ConfirmPayment(%q) accepted a malformed code", code)
		}
	}
}

func TestConfirmPaymentRejectsZeroAmount(t *testing.T) {
	svc := NewMpesaService()

	if err := svc.ConfirmPayment(context.Background(), "QGH7TK61SV", 0); err == nil {
		t.Error("ConfirmPayment accepted a zero amount")
	}
}
