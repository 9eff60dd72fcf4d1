package repository

import (
	"context"
	"encoding/json"
	"time"

	"booking-engine/internal/domain/booking"
	domcatalog "booking-engine/internal/domain/catalog"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// addOnRecord is the persisted shape of an add-on selection, stored as JSONB
// alongside the booking row.
type addOnRecord struct {
	AddOnID   uuid.UUID       `json:"add_on_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Type      string          `json:"type"`
	Quantity  int32           `json:"quantity"`
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const stmt = `
INSERT INTO bookings (
	id, reference, product_id, product_type, check_in, check_out,
	quantity, guest_count, guest_name, guest_email, guest_phone,
	total_price, currency, status, add_ons, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	addOns := make([]addOnRecord, len(b.AddOns()))
	for i, sel := range b.AddOns() {
		addOns[i] = addOnRecord{
			AddOnID:   sel.AddOnID,
			Name:      sel.Name,
			UnitPrice: sel.UnitPrice,
			Type:      string(sel.Type),
			Quantity:  sel.Quantity,
		}
	}
	addOnsJSON, err := json.Marshal(addOns)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to encode add-ons", err)
	}

	_, err = r.pool.Exec(ctx, stmt,
		b.ID(),
		b.Reference(),
		b.ProductID(),
		b.ProductType().String(),
		b.Stay().CheckIn(),
		b.Stay().CheckOut(),
		b.Quantity(),
		b.GuestCount(),
		b.Guest().Name(),
		b.Guest().Email(),
		b.Guest().Phone(),
		pgconv.DecimalToNumeric(b.TotalPrice()),
		b.Currency(),
		b.Status().String(),
		addOnsJSON,
		b.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "booking reference already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	const query = `
SELECT id, reference, product_id, product_type, check_in, check_out,
	quantity, guest_count, guest_name, guest_email, guest_phone,
	total_price, currency, status, add_ons, created_at
FROM bookings
WHERE reference = $1`

	var (
		id          uuid.UUID
		ref         string
		productID   uuid.UUID
		productType string
		checkIn     time.Time
		checkOut    time.Time
		quantity    int32
		guestCount  int32
		guestName   string
		guestEmail  string
		guestPhone  string
		totalPrice  pgtype.Numeric
		currency    string
		status      string
		addOnsJSON  []byte
		createdAt   time.Time
	)
	err := r.pool.QueryRow(ctx, query, reference).Scan(
		&id, &ref, &productID, &productType, &checkIn, &checkOut,
		&quantity, &guestCount, &guestName, &guestEmail, &guestPhone,
		&totalPrice, &currency, &status, &addOnsJSON, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query booking", err)
	}

	stay, err := booking.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid stay range in booking row", err)
	}
	guest, err := booking.NewGuest(guestName, guestEmail, guestPhone)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid guest in booking row", err)
	}
	total, err := pgconv.DecimalFromNumeric(totalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid total price", err)
	}

	var records []addOnRecord
	if len(addOnsJSON) > 0 {
		if unmarshalErr := json.Unmarshal(addOnsJSON, &records); unmarshalErr != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to decode add-ons", unmarshalErr)
		}
	}
	addOns := make([]booking.AddOnSelection, len(records))
	for i, rec := range records {
		addOns[i] = booking.AddOnSelection{
			AddOnID:   rec.AddOnID,
			Name:      rec.Name,
			UnitPrice: rec.UnitPrice,
			Type:      domcatalog.AddOnType(rec.Type),
			Quantity:  rec.Quantity,
		}
	}

	return booking.ReconstructBooking(
		id, ref, productID, booking.ProductType(productType), stay,
		quantity, guestCount, guest, total, currency,
		booking.Status(status), addOns, createdAt,
	), nil
}

// UpdateStatus flips the status only when the row still carries the expected
// one. The status guard in the WHERE clause is what makes concurrent cancels
// of the same reference race-safe: the losing UPDATE matches zero rows.
func (r *BookingRepository) UpdateStatus(ctx context.Context, reference string, from, to booking.Status) error {
	const stmt = `UPDATE bookings SET status = $3 WHERE reference = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, stmt, reference, from.String(), to.String())
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE reference = $1)`, reference,
		).Scan(&exists); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to resolve status update miss", err)
		}
		if !exists {
			return infra.NewRepoErr(infra.KindNotFound, "booking not found")
		}
		return infra.NewRepoErr(infra.KindContention, "booking status changed concurrently")
	}
	return nil
}
