package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// Repository implements RepositoryInterface on Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new booking repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const bookingColumns = `
	id, tracking_number, booking_reference, user_id,
	shipment_type, weight_kg, declared_value_cents, pickup_region, delivery_region,
	is_express, delivery_option, special_requirements,
	base_rate_cents, weight_surcharge_cents, distance_charge_cents, insurance_fee_cents,
	express_fee_cents, delivery_fee_cents, special_fees_cents, total_cents,
	sender_first_name, sender_last_name, sender_email, sender_phone,
	pickup_address, pickup_date,
	delivery_address, recipient_name, recipient_phone,
	item_description, payment_method, payment_reference,
	status, created_at, updated_at`

// Insert stores a frozen booking record, stamping the collision-resistant
// record ID here at the persistence boundary. The display references keep
// their human-readable scheme and are guarded by a unique index instead.
func (r *Repository) Insert(ctx context.Context, record *models.BookingRecord) (*models.BookingRecord, error) {
	query := `
		INSERT INTO bookings (
			id, tracking_number, booking_reference, user_id,
			shipment_type, weight_kg, declared_value_cents, pickup_region, delivery_region,
			is_express, delivery_option, special_requirements,
			base_rate_cents, weight_surcharge_cents, distance_charge_cents, insurance_fee_cents,
			express_fee_cents, delivery_fee_cents, special_fees_cents, total_cents,
			sender_first_name, sender_last_name, sender_email, sender_phone,
			pickup_address, pickup_date,
			delivery_address, recipient_name, recipient_phone,
			item_description, payment_method, payment_reference,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32,
			$33, $34, $35
		)
		RETURNING ` + bookingColumns

	reqs := make([]string, 0, len(record.Shipment.SpecialRequirements))
	for _, req := range record.Shipment.SpecialRequirements {
		reqs = append(reqs, string(req))
	}

	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), record.TrackingNumber, record.BookingReference, nullable(record.UserID),
		string(record.Shipment.ShipmentType), record.Shipment.WeightKg, int64(record.Shipment.DeclaredValue),
		record.Shipment.PickupRegion, record.Shipment.DeliveryRegion,
		record.Shipment.IsExpress, string(record.Shipment.DeliveryOption), strings.Join(reqs, ","),
		int64(record.Quote.BaseRate), int64(record.Quote.WeightSurcharge), int64(record.Quote.DistanceCharge),
		int64(record.Quote.InsuranceFee), int64(record.Quote.ExpressFee), int64(record.Quote.DeliveryFee),
		int64(record.Quote.SpecialFees), int64(record.Quote.Total),
		record.SenderFirstName, record.SenderLastName, record.SenderEmail, record.SenderPhone,
		record.PickupAddress, record.PickupDate,
		record.DeliveryAddress, record.RecipientName, record.RecipientPhone,
		record.ItemDescription, record.PaymentMethod, record.PaymentReference,
		record.Status, record.CreatedAt, record.UpdatedAt,
	)

	stored, err := scanBooking(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.Insert: %w", err)
	}
	return stored, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanBooking reads one row into a BookingRecord.
func scanBooking(row pgx.Row) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	var userID *string
	var shipmentType, deliveryOption, specialReqs string
	var declaredValue, baseRate, weightSurcharge, distanceCharge int64
	var insuranceFee, expressFee, deliveryFee, specialFees, total int64

	err := row.Scan(
		&rec.ID, &rec.TrackingNumber, &rec.BookingReference, &userID,
		&shipmentType, &rec.Shipment.WeightKg, &declaredValue,
		&rec.Shipment.PickupRegion, &rec.Shipment.DeliveryRegion,
		&rec.Shipment.IsExpress, &deliveryOption, &specialReqs,
		&baseRate, &weightSurcharge, &distanceCharge, &insuranceFee,
		&expressFee, &deliveryFee, &specialFees, &total,
		&rec.SenderFirstName, &rec.SenderLastName, &rec.SenderEmail, &rec.SenderPhone,
		&rec.PickupAddress, &rec.PickupDate,
		&rec.DeliveryAddress, &rec.RecipientName, &rec.RecipientPhone,
		&rec.ItemDescription, &rec.PaymentMethod, &rec.PaymentReference,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	if userID != nil {
		rec.UserID = *userID
	}
	rec.Shipment.ShipmentType = models.ShipmentType(shipmentType)
	rec.Shipment.DeliveryOption = models.DeliveryOption(deliveryOption)
	rec.Shipment.DeclaredValue = models.Money(declaredValue)
	for _, raw := range strings.Split(specialReqs, ",") {
		if req := strings.TrimSpace(raw); req != "" {
			rec.Shipment.SpecialRequirements = append(rec.Shipment.SpecialRequirements, models.SpecialRequirement(req))
		}
	}
	rec.Quote = models.CostBreakdown{
		BaseRate:        models.Money(baseRate),
		WeightSurcharge: models.Money(weightSurcharge),
		DistanceCharge:  models.Money(distanceCharge),
		InsuranceFee:    models.Money(insuranceFee),
		ExpressFee:      models.Money(expressFee),
		DeliveryFee:     models.Money(deliveryFee),
		SpecialFees:     models.Money(specialFees),
		Total:           models.Money(total),
	}
	return &rec, nil
}

// FindByID retrieves a single booking by its record ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	rec, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return rec, nil
}

// FindByTrackingNumber retrieves a single booking by its tracking number.
func (r *Repository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*models.BookingRecord, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tracking_number = $1`
	rec, err := scanBooking(r.db.QueryRow(ctx, query, trackingNumber))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByTrackingNumber: %w", err)
	}
	return rec, nil
}

// List retrieves bookings with pagination, newest first.
func (r *Repository) List(ctx context.Context, page, limit int) ([]*models.BookingRecord, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	var records []*models.BookingRecord
	for rows.Next() {
		rec, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.List.scanBooking: %w", err)
		}
		records = append(records, rec)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bookings").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.List.Count: %w", err)
	}

	return records, total, nil
}

// UpdateStatus applies an order-management status transition.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
