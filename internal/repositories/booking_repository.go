package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, trip_id, operator_id, traveller_id,
	COALESCE(quote_id,0), COALESCE(quote_request_id,0),
	date_from, date_to, pax,
	amount, currency, commission_pct, commission_amount, operator_net,
	status, payment_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var amount, pct, commission, net string
	if err := row.Scan(
		&b.ID, &b.TripID, &b.OperatorID, &b.TravellerID,
		&b.QuoteID, &b.QuoteRequestID,
		&b.DateFrom, &b.DateTo, &b.Pax,
		&amount, &b.Currency, &pct, &commission, &net,
		&b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	var err error
	if b.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Booking{}, fmt.Errorf("bad amount on booking %d: %w", b.ID, err)
	}
	if b.CommissionPct, err = decimal.NewFromString(pct); err != nil {
		return models.Booking{}, fmt.Errorf("bad commission_pct on booking %d: %w", b.ID, err)
	}
	if b.Commission, err = decimal.NewFromString(commission); err != nil {
		return models.Booking{}, fmt.Errorf("bad commission_amount on booking %d: %w", b.ID, err)
	}
	if b.OperatorNet, err = decimal.NewFromString(net); err != nil {
		return models.Booking{}, fmt.Errorf("bad operator_net on booking %d: %w", b.ID, err)
	}
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// List returns bookings matching filter, newest first.
func (r BookingRepository) List(f models.BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.TravellerID > 0 {
		where = append(where, "traveller_id=?")
		args = append(args, f.TravellerID)
	}
	if f.OperatorID > 0 {
		where = append(where, "operator_id=?")
		args = append(args, f.OperatorID)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.PaymentStatus); s != "" {
		where = append(where, "payment_status=?")
		args = append(args, s)
	}

	rows, err := r.db().Query(
		`SELECT `+bookingColumns+` FROM bookings WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(trip_id, operator_id, traveller_id, quote_id, quote_request_id,
			 date_from, date_to, pax,
			 amount, currency, commission_pct, commission_amount, operator_net,
			 status, payment_status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		b.TripID, b.OperatorID, b.TravellerID, nullableID(b.QuoteID), nullableID(b.QuoteRequestID),
		b.DateFrom, b.DateTo, b.Pax,
		b.Amount.String(), b.Currency, b.CommissionPct.String(), b.Commission.String(), b.OperatorNet.String(),
		b.Status, b.PaymentStatus,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus moves a booking from an expected current status to a new one.
// The WHERE clause on the old status is the per-booking mutual exclusion:
// when two transitions race on the same source state, exactly one update
// matches a row. Returns false when the guard did not match.
func (r BookingRepository) UpdateStatus(id int64, from, to string) (bool, error) {
	if id <= 0 {
		return false, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(
		`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=? AND status=?`,
		to, id, from,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdatePaymentStatus applies the same conditional-update discipline to the
// payment ladder.
func (r BookingRepository) UpdatePaymentStatus(id int64, from, to string) (bool, error) {
	if id <= 0 {
		return false, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(
		`UPDATE bookings SET payment_status=?, updated_at=NOW() WHERE id=? AND payment_status=?`,
		to, id, from,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
