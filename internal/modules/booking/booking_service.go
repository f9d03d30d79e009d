package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
	"github.com/abdiaziz77/MizigoSmart-sub000/pkg/logger"
)

// RepositoryInterface defines the contract for the booking repository.
type RepositoryInterface interface {
	Insert(ctx context.Context, record *models.BookingRecord) (*models.BookingRecord, error)
	FindByID(ctx context.Context, id string) (*models.BookingRecord, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*models.BookingRecord, error)
	List(ctx context.Context, page, limit int) ([]*models.BookingRecord, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PaymentServiceInterface is the external payment collaborator. It only
// vets the shape of the confirmation code; real gateway verification is not
// this system's job.
type PaymentServiceInterface interface {
	ConfirmPayment(ctx context.Context, transactionRef string, amount models.Money) error
}

// NotifierInterface is the external communications collaborator.
type NotifierInterface interface {
	SendBookingConfirmation(ctx context.Context, record *models.BookingRecord) error
}

// ServiceInterface defines the booking operations exposed to the handler.
type ServiceInterface interface {
	OpenSession(profile *models.UserProfile) FormView
	SessionView(sessionID string) (FormView, error)
	UpdateFields(sessionID string, fields map[string]string) (FormView, error)
	Advance(sessionID string) (FormView, error)
	Retreat(sessionID string) (FormView, error)
	Submit(ctx context.Context, sessionID string, confirm models.PaymentConfirmation) (*models.BookingRecord, ValidationErrors, error)

	GetBooking(ctx context.Context, bookingID string) (*models.BookingRecord, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.BookingRecord, error)
	ListBookings(ctx context.Context, page, limit int) ([]*models.BookingRecord, int, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
}

// FormView is the read-only snapshot of a form session handed to the UI.
type FormView struct {
	SessionID        string               `json:"session_id"`
	Step             string               `json:"step"`
	Fields           map[string]string    `json:"fields"`
	Errors           ValidationErrors     `json:"errors,omitempty"`
	Quote            models.CostBreakdown `json:"quote"`
	TrackingNumber   string               `json:"tracking_number,omitempty"`
	BookingReference string               `json:"booking_reference,omitempty"`
}

// Service implements the booking workflow: it owns the live form sessions
// and drives submissions through payment check, persistence and
// notification.
type Service struct {
	table    *rates.Table
	repo     RepositoryInterface
	payments PaymentServiceInterface
	notifier NotifierInterface
	log      logger.Logger

	sessionsLock sync.RWMutex
	sessions     map[string]*Form
}

// NewService creates a new booking service.
func NewService(table *rates.Table, repo RepositoryInterface, payments PaymentServiceInterface, notifier NotifierInterface, log logger.Logger) *Service {
	return &Service{
		table:    table,
		repo:     repo,
		payments: payments,
		notifier: notifier,
		log:      log,
		sessions: make(map[string]*Form),
	}
}

// OpenSession starts a new form session, optionally pre-filling the contact
// fields from the caller's saved profile.
func (s *Service) OpenSession(profile *models.UserProfile) FormView {
	form := NewForm(s.table)
	if profile != nil {
		form.ApplyProfile(*profile)
	}

	id := uuid.NewString()
	s.sessionsLock.Lock()
	s.sessions[id] = form
	s.sessionsLock.Unlock()

	return s.view(id, form)
}

func (s *Service) form(sessionID string) (*Form, error) {
	s.sessionsLock.RLock()
	form, ok := s.sessions[sessionID]
	s.sessionsLock.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return form, nil
}

func (s *Service) view(sessionID string, form *Form) FormView {
	return FormView{
		SessionID:        sessionID,
		Step:             form.CurrentStep().String(),
		Fields:           form.Fields(),
		Errors:           form.Errors(),
		Quote:            form.Quote(),
		TrackingNumber:   form.TrackingNumber(),
		BookingReference: form.BookingReference(),
	}
}

// SessionView returns the current snapshot of a session.
func (s *Service) SessionView(sessionID string) (FormView, error) {
	form, err := s.form(sessionID)
	if err != nil {
		return FormView{}, err
	}
	return s.view(sessionID, form), nil
}

// UpdateFields applies field edits to the session's form.
func (s *Service) UpdateFields(sessionID string, fields map[string]string) (FormView, error) {
	form, err := s.form(sessionID)
	if err != nil {
		return FormView{}, err
	}
	for name, value := range fields {
		form.UpdateField(name, value)
	}
	return s.view(sessionID, form), nil
}

// Advance attempts the next-step transition. A validation rejection is not
// an error; the returned view carries the error map for inline display.
func (s *Service) Advance(sessionID string) (FormView, error) {
	form, err := s.form(sessionID)
	if err != nil {
		return FormView{}, err
	}
	form.Advance()
	return s.view(sessionID, form), nil
}

// Retreat moves the form back one step.
func (s *Service) Retreat(sessionID string) (FormView, error) {
	form, err := s.form(sessionID)
	if err != nil {
		return FormView{}, err
	}
	form.Retreat()
	return s.view(sessionID, form), nil
}

// Submit drives the terminal transition: freeze the form, vet the payment
// code, persist the record, send the confirmation email, drop the session.
// Any failure before the store keeps the session alive untouched so the
// user resubmits with the references already shown to them.
func (s *Service) Submit(ctx context.Context, sessionID string, confirm models.PaymentConfirmation) (*models.BookingRecord, ValidationErrors, error) {
	form, err := s.form(sessionID)
	if err != nil {
		return nil, nil, err
	}

	record, fieldErrs, err := form.Submit(confirm)
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	if err := s.payments.ConfirmPayment(ctx, record.PaymentReference, record.Quote.Total); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", models.ErrMissingPaymentCode, err)
	}

	stored, err := s.repo.Insert(ctx, record)
	if err != nil {
		s.log.Errorf(ctx, "service.Submit: store booking %s: %v", record.TrackingNumber, err)
		return nil, nil, fmt.Errorf("%w: %v", models.ErrSubmissionFailed, err)
	}

	// Fire-and-forget; a lost email never fails a stored booking.
	go func(rec models.BookingRecord) {
		if err := s.notifier.SendBookingConfirmation(context.Background(), &rec); err != nil {
			s.log.Warnf(context.Background(), "service.Submit: confirmation email for %s: %v", rec.TrackingNumber, err)
		}
	}(*stored)

	s.sessionsLock.Lock()
	delete(s.sessions, sessionID)
	s.sessionsLock.Unlock()

	s.log.Infof(ctx, "service.Submit: booking %s stored, total %s", stored.TrackingNumber, stored.Quote.Total)
	return stored, nil, nil
}

// GetBooking retrieves a stored booking by its record ID.
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*models.BookingRecord, error) {
	record, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("service.GetBooking: %w", err)
	}
	return record, nil
}

// GetByTrackingNumber is the public tracking lookup.
func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.BookingRecord, error) {
	record, err := s.repo.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service.GetByTrackingNumber: %w", err)
	}
	return record, nil
}

// ListBookings lists stored bookings with pagination, newest first.
func (s *Service) ListBookings(ctx context.Context, page, limit int) ([]*models.BookingRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	records, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListBookings: %w", err)
	}
	return records, total, nil
}

// UpdateStatus is the order-management transition applied by admins. The
// engine itself only ever writes "paid"; everything after that arrives here.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, status string) error {
	if !models.KnownStatus(status) {
		return models.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return fmt.Errorf("service.UpdateStatus: %w", err)
	}
	return nil
}
