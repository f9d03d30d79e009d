package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// ServiceInterface defines the contract for the communications collaborator.
type ServiceInterface interface {
	SendBookingConfirmation(ctx context.Context, record *models.BookingRecord) error
}

// SESService sends booking confirmations through Amazon SES.
type SESService struct {
	client *sesv2.Client
	sender string
}

// NewSESService builds the SES client from the ambient AWS configuration.
func NewSESService(ctx context.Context, region, sender string) (*SESService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("notify.NewSESService: load aws config: %w", err)
	}
	return &SESService{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
	}, nil
}

// SendBookingConfirmation emails the sender their tracking number, booking
// reference and total.
func (s *SESService) SendBookingConfirmation(ctx context.Context, record *models.BookingRecord) error {
	subject := fmt.Sprintf("MizigoSmart booking %s confirmed", record.BookingReference)
	body := fmt.Sprintf(
		"Dear %s %s,\n\n"+
			"Your booking has been confirmed and paid.\n\n"+
			"Booking reference: %s\n"+
			"Tracking number:   %s\n"+
			"Route:             %s to %s\n"+
			"Amount paid:       %s (M-Pesa %s)\n\n"+
			"Track your shipment any time with your tracking number.\n",
		record.SenderFirstName, record.SenderLastName,
		record.BookingReference, record.TrackingNumber,
		record.PickupRegion, record.DeliveryRegion,
		record.Quote.Total, record.PaymentReference,
	)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{record.SenderEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("notify.SendBookingConfirmation: %w", err)
	}
	return nil
}

// NoopService satisfies ServiceInterface when email is not configured.
type NoopService struct{}

func (NoopService) SendBookingConfirmation(ctx context.Context, record *models.BookingRecord) error {
	return nil
}
