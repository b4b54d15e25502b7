package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "safariconnector/internal/config"
	intdb "safariconnector/internal/db"
	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"

	"github.com/shopspring/decimal"
)

// QuoteRepository covers both quote_requests (enquiries) and quotes.
type QuoteRepository struct {
	DB *sql.DB
}

func (r QuoteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const enquiryColumns = `id, trip_id, operator_id, traveller_id, date_from, date_to, pax, COALESCE(notes,''), created_at`

func scanEnquiry(row rowScanner) (models.QuoteRequest, error) {
	var q models.QuoteRequest
	err := row.Scan(&q.ID, &q.TripID, &q.OperatorID, &q.TravellerID, &q.DateFrom, &q.DateTo, &q.Pax, &q.Notes, &q.CreatedAt)
	return q, err
}

func (r QuoteRepository) CreateEnquiry(q models.QuoteRequest) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO quote_requests (trip_id, operator_id, traveller_id, date_from, date_to, pax, notes, created_at)
		VALUES (?,?,?,?,?,?,?,NOW())`,
		q.TripID, q.OperatorID, q.TravellerID, q.DateFrom, q.DateTo, q.Pax, q.Notes,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r QuoteRepository) GetEnquiryByID(id int64) (models.QuoteRequest, error) {
	row := r.db().QueryRow(`SELECT `+enquiryColumns+` FROM quote_requests WHERE id=? LIMIT 1`, id)
	q, err := scanEnquiry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QuoteRequest{}, domain.NotFoundError{Resource: "enquiry", Err: err}
		}
		return models.QuoteRequest{}, err
	}
	return q, nil
}

func (r QuoteRepository) ListEnquiriesByTraveller(travellerID int64) ([]models.QuoteRequest, error) {
	return r.listEnquiries(`SELECT `+enquiryColumns+` FROM quote_requests WHERE traveller_id=? ORDER BY created_at DESC, id DESC`, travellerID)
}

func (r QuoteRepository) ListEnquiriesByOperator(operatorID int64) ([]models.QuoteRequest, error) {
	return r.listEnquiries(`SELECT `+enquiryColumns+` FROM quote_requests WHERE operator_id=? ORDER BY created_at DESC, id DESC`, operatorID)
}

func (r QuoteRepository) listEnquiries(query string, args ...any) ([]models.QuoteRequest, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuoteRequest{}
	for rows.Next() {
		q, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

const quoteColumns = `id, quote_request_id, operator_id, amount, currency, COALESCE(valid_until,''), COALESCE(notes,''), status, created_at`

func scanQuote(row rowScanner) (models.Quote, error) {
	var q models.Quote
	var amount string
	if err := row.Scan(&q.ID, &q.QuoteRequestID, &q.OperatorID, &amount, &q.Currency, &q.ValidUntil, &q.Notes, &q.Status, &q.CreatedAt); err != nil {
		return models.Quote{}, err
	}
	var err error
	if q.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Quote{}, fmt.Errorf("bad amount on quote %d: %w", q.ID, err)
	}
	return q, nil
}

func (r QuoteRepository) GetQuoteByID(id int64) (models.Quote, error) {
	row := r.db().QueryRow(`SELECT `+quoteColumns+` FROM quotes WHERE id=? LIMIT 1`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quote{}, domain.NotFoundError{Resource: "quote", Err: err}
		}
		return models.Quote{}, err
	}
	return q, nil
}

// GetActiveQuote returns the single active quote on an enquiry, if any.
func (r QuoteRepository) GetActiveQuote(quoteRequestID int64) (models.Quote, bool, error) {
	row := r.db().QueryRow(
		`SELECT `+quoteColumns+` FROM quotes WHERE quote_request_id=? AND status=? LIMIT 1`,
		quoteRequestID, models.QuoteActive,
	)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quote{}, false, nil
		}
		return models.Quote{}, false, err
	}
	return q, true, nil
}

// CreateQuote supersedes any active quote on the enquiry and inserts the new
// one atomically, keeping at most one active quote per enquiry.
func (r QuoteRepository) CreateQuote(q models.Quote) (int64, error) {
	var id int64
	err := intdb.WithTx(context.Background(), r.db(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`UPDATE quotes SET status=? WHERE quote_request_id=? AND status=?`,
			models.QuoteSuperseded, q.QuoteRequestID, models.QuoteActive,
		); err != nil {
			return err
		}
		res, err := tx.Exec(`
			INSERT INTO quotes (quote_request_id, operator_id, amount, currency, valid_until, notes, status, created_at)
			VALUES (?,?,?,?,?,?,?,NOW())`,
			q.QuoteRequestID, q.OperatorID, q.Amount.String(), q.Currency, q.ValidUntil, q.Notes, models.QuoteActive,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// MarkQuoteAccepted flips an active quote to accepted; the status guard makes
// double-accepts a conflict rather than a silent overwrite.
func (r QuoteRepository) MarkQuoteAccepted(id int64) error {
	res, err := r.db().Exec(
		`UPDATE quotes SET status=? WHERE id=? AND status=?`,
		models.QuoteAccepted, id, models.QuoteActive,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "quote", Msg: "quote is no longer active"}
	}
	return nil
}
