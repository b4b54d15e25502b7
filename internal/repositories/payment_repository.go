package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain/models"

	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id, booking_id, COALESCE(method,''), COALESCE(reference,''), amount, currency, status, COALESCE(note,''), created_at`

func scanPayment(row rowScanner) (models.Payment, error) {
	var p models.Payment
	var amount string
	if err := row.Scan(&p.ID, &p.BookingID, &p.Method, &p.Reference, &amount, &p.Currency, &p.Status, &p.Note, &p.CreatedAt); err != nil {
		return models.Payment{}, err
	}
	var err error
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Payment{}, fmt.Errorf("bad amount on payment %d: %w", p.ID, err)
	}
	return p, nil
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, method, reference, amount, currency, status, note, created_at)
		VALUES (?,?,?,?,?,?,?,NOW())`,
		p.BookingID, p.Method, p.Reference, p.Amount.String(), p.Currency, p.Status, p.Note,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns payment records, optionally scoped to a booking or a record
// status, newest first. The finance back-office lists submitted records.
func (r PaymentRepository) List(bookingID int64, status string) ([]models.Payment, error) {
	where := []string{"1=1"}
	args := []any{}
	if bookingID > 0 {
		where = append(where, "booking_id=?")
		args = append(args, bookingID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status=?")
		args = append(args, s)
	}
	rows, err := r.db().Query(
		`SELECT `+paymentColumns+` FROM payments WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkLatestSubmitted flips the newest submitted record on a booking to the
// given terminal record status (verified/rejected).
func (r PaymentRepository) MarkLatestSubmitted(bookingID int64, status string) error {
	_, err := r.db().Exec(`
		UPDATE payments SET status=?
		WHERE booking_id=? AND status=?
		ORDER BY created_at DESC, id DESC LIMIT 1`,
		status, bookingID, models.PaymentRecordSubmitted,
	)
	return err
}
