package payment

import (
	"context"
	"fmt"
	"regexp"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// ServiceInterface defines the contract for the payment collaborator.
type ServiceInterface interface {
	ConfirmPayment(ctx context.Context, transactionRef string, amount models.Money) error
}

// mpesaCodePattern is the shape of an M-Pesa confirmation code: ten
// letters and digits. Matched case-insensitively; customers type these
// from an SMS and casing varies.
var mpesaCodePattern = regexp.MustCompile(`(?i)^[A-Z0-9]{10}$`)

// MpesaService vets customer-entered M-Pesa confirmation codes. It checks
// shape only; reconciling the code against the Daraja transaction log is the
// finance side's job, not this service's.
type MpesaService struct{}

func NewMpesaService() *MpesaService {
	return &MpesaService{}
}

// ConfirmPayment accepts a code that looks like an M-Pesa confirmation for a
// positive amount.
func (s *MpesaService) ConfirmPayment(ctx context.Context, transactionRef string, amount models.Money) error {
	if amount <= 0 {
		return fmt.Errorf("invalid payment amount %s", amount)
	}
	if !mpesaCodePattern.MatchString(transactionRef) {
		return fmt.Errorf("transaction code %q does not look like an M-Pesa confirmation", transactionRef)
	}
	return nil
}
