package repository

import (
	"context"
	"time"

	"booking-engine/internal/domain/inventory"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) GetRange(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]inventory.Entry, error) {
	const query = `
SELECT product_id, date, total_capacity, booked_capacity, unit_price, currency, disabled
FROM inventory_entries
WHERE product_id = $1 AND date >= $2 AND date < $3
ORDER BY date`

	rows, err := r.pool.Query(ctx, query, productID, inventory.NormalizeDate(from), inventory.NormalizeDate(to))
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query inventory range", err)
	}
	defer rows.Close()

	var entries []inventory.Entry
	for rows.Next() {
		entry, scanErr := scanEntry(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read inventory rows", err)
	}
	return entries, nil
}

// Reserve is a single conditional UPDATE: the capacity check and the
// increment happen in one statement, so two concurrent bookings can never
// both observe the same free capacity.
func (r *InventoryRepository) Reserve(ctx context.Context, productID uuid.UUID, date time.Time, quantity int32) (inventory.Entry, error) {
	const stmt = `
UPDATE inventory_entries
SET booked_capacity = booked_capacity + $3
WHERE product_id = $1 AND date = $2
  AND NOT disabled
  AND booked_capacity + $3 <= total_capacity
RETURNING product_id, date, total_capacity, booked_capacity, unit_price, currency, disabled`

	day := inventory.NormalizeDate(date)
	entry, err := scanEntry(r.pool.QueryRow(ctx, stmt, productID, day, quantity).Scan)
	if err == nil {
		return entry, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		if isContention(err) {
			return inventory.Entry{}, infra.WrapRepoErr(infra.KindContention, "reservation lost concurrent update", err)
		}
		return inventory.Entry{}, err
	}

	// No row matched: tell "not configured" apart from "insufficient
	// capacity or disabled"
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM inventory_entries WHERE product_id = $1 AND date = $2)`
	var exists bool
	if existsErr := r.pool.QueryRow(ctx, existsQuery, productID, day).Scan(&exists); existsErr != nil {
		return inventory.Entry{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to check inventory existence", existsErr)
	}
	if !exists {
		return inventory.Entry{}, infra.NewRepoErr(infra.KindNotFound, "no inventory configured")
	}
	return inventory.Entry{}, infra.NewRepoErr(infra.KindInsufficientCapacity, "insufficient remaining capacity")
}

func (r *InventoryRepository) Release(ctx context.Context, productID uuid.UUID, date time.Time, quantity int32) error {
	const stmt = `
UPDATE inventory_entries
SET booked_capacity = GREATEST(booked_capacity - $3, 0)
WHERE product_id = $1 AND date = $2`

	tag, err := r.pool.Exec(ctx, stmt, productID, inventory.NormalizeDate(date), quantity)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to release capacity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "no inventory configured")
	}
	return nil
}

type scanFunc func(dest ...any) error

func scanEntry(scan scanFunc) (inventory.Entry, error) {
	var (
		productID uuid.UUID
		date      time.Time
		total     int32
		booked    int32
		unitPrice pgtype.Numeric
		currency  string
		disabled  bool
	)
	if err := scan(&productID, &date, &total, &booked, &unitPrice, &currency, &disabled); err != nil {
		if pgconv.IsNoRows(err) {
			return inventory.Entry{}, infra.NewRepoErr(infra.KindNotFound, "inventory entry not found")
		}
		return inventory.Entry{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan inventory entry", err)
	}

	price, err := pgconv.DecimalFromNumeric(unitPrice)
	if err != nil {
		return inventory.Entry{}, infra.WrapRepoErr(infra.KindDBFailure, "invalid unit price", err)
	}
	entry, err := inventory.NewEntry(productID, date, total, booked, price, currency, disabled)
	if err != nil {
		return inventory.Entry{}, infra.WrapRepoErr(infra.KindDBFailure, "invalid inventory row", err)
	}
	return entry, nil
}
