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

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `t.id, t.operator_id, t.title, COALESCE(t.summary,''), COALESCE(t.country,''),
	t.duration_days, t.min_pax, t.max_pax, t.published, t.created_at, t.updated_at`

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.OperatorID, &t.Title, &t.Summary, &t.Country,
		&t.DurationDays, &t.MinPax, &t.MaxPax, &t.Published, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// GetByID loads a trip with its day rows and seasonal rates.
func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips t WHERE t.id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Trip{}, err
	}
	if t.Days, err = r.listDays(id); err != nil {
		return models.Trip{}, err
	}
	if t.Rates, err = r.listRates(id); err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// ListPublic returns published trips of approved operators only. Listings of
// suspended or pending operators never reach the public surface.
func (r TripRepository) ListPublic(country string) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + `
		FROM trips t
		JOIN operators o ON o.id = t.operator_id
		WHERE t.published = 1 AND o.status = 'approved'`
	args := []any{}
	if country != "" {
		query += ` AND t.country = ?`
		args = append(args, country)
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`
	return r.listTrips(query, args...)
}

func (r TripRepository) ListByOperator(operatorID int64) ([]models.Trip, error) {
	return r.listTrips(`SELECT `+tripColumns+` FROM trips t WHERE t.operator_id=? ORDER BY t.created_at DESC, t.id DESC`, operatorID)
}

func (r TripRepository) listTrips(query string, args ...any) ([]models.Trip, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) listDays(tripID int64) ([]models.TripDay, error) {
	rows, err := r.db().Query(
		`SELECT id, trip_id, day_number, title, COALESCE(detail,'') FROM trip_days WHERE trip_id=? ORDER BY day_number`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripDay{}
	for rows.Next() {
		var d models.TripDay
		if err := rows.Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Title, &d.Detail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r TripRepository) listRates(tripID int64) ([]models.SeasonalRate, error) {
	rows, err := r.db().Query(
		`SELECT id, trip_id, season_start, season_end, price_per_pax, currency FROM seasonal_rates WHERE trip_id=? ORDER BY season_start`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SeasonalRate{}
	for rows.Next() {
		var sr models.SeasonalRate
		var price string
		if err := rows.Scan(&sr.ID, &sr.TripID, &sr.SeasonStart, &sr.SeasonEnd, &price, &sr.Currency); err != nil {
			return nil, err
		}
		var perr error
		if sr.PricePerPax, perr = decimal.NewFromString(price); perr != nil {
			return nil, fmt.Errorf("bad price_per_pax on rate %d: %w", sr.ID, perr)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// Create inserts a trip with its day and rate rows in one transaction.
func (r TripRepository) Create(t models.Trip) (int64, error) {
	var id int64
	err := intdb.WithTx(context.Background(), r.db(), func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO trips (operator_id, title, summary, country, duration_days, min_pax, max_pax, published, created_at, updated_at)
			VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())`,
			t.OperatorID, t.Title, t.Summary, t.Country, t.DurationDays, t.MinPax, t.MaxPax, t.Published,
		)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertTripChildren(tx, id, t.Days, t.Rates)
	})
	return id, err
}

// Update rewrites the trip row and replaces its children.
func (r TripRepository) Update(t models.Trip) error {
	return intdb.WithTx(context.Background(), r.db(), func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE trips SET title=?, summary=?, country=?, duration_days=?, min_pax=?, max_pax=?, published=?, updated_at=NOW()
			WHERE id=? AND operator_id=?`,
			t.Title, t.Summary, t.Country, t.DurationDays, t.MinPax, t.MaxPax, t.Published, t.ID, t.OperatorID,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var exists int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM trips WHERE id=? AND operator_id=?`, t.ID, t.OperatorID).Scan(&exists); err != nil {
				return err
			}
			if exists == 0 {
				return domain.NotFoundError{Resource: "trip"}
			}
		}
		if _, err := tx.Exec(`DELETE FROM trip_days WHERE trip_id=?`, t.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM seasonal_rates WHERE trip_id=?`, t.ID); err != nil {
			return err
		}
		return insertTripChildren(tx, t.ID, t.Days, t.Rates)
	})
}

func (r TripRepository) Delete(id, operatorID int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id=? AND operator_id=?`, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func insertTripChildren(tx *sql.Tx, tripID int64, days []models.TripDay, rates []models.SeasonalRate) error {
	for _, d := range days {
		if _, err := tx.Exec(
			`INSERT INTO trip_days (trip_id, day_number, title, detail) VALUES (?,?,?,?)`,
			tripID, d.DayNumber, d.Title, d.Detail,
		); err != nil {
			return err
		}
	}
	for _, sr := range rates {
		if _, err := tx.Exec(
			`INSERT INTO seasonal_rates (trip_id, season_start, season_end, price_per_pax, currency) VALUES (?,?,?,?,?)`,
			tripID, sr.SeasonStart, sr.SeasonEnd, sr.PricePerPax.String(), sr.Currency,
		); err != nil {
			return err
		}
	}
	return nil
}
