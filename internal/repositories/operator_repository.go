package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
)

type OperatorRepository struct {
	DB *sql.DB
}

func (r OperatorRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const operatorColumns = `id, user_id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(country,''), status, created_at`

func scanOperator(row rowScanner) (models.Operator, error) {
	var o models.Operator
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.Email, &o.Phone, &o.Country, &o.Status, &o.CreatedAt)
	return o, err
}

func (r OperatorRepository) GetByID(id int64) (models.Operator, error) {
	row := r.db().QueryRow(`SELECT `+operatorColumns+` FROM operators WHERE id=? LIMIT 1`, id)
	o, err := scanOperator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Operator{}, domain.NotFoundError{Resource: "operator", Err: err}
		}
		return models.Operator{}, err
	}
	return o, nil
}

// GetByUserID resolves the operator account behind an authenticated user.
func (r OperatorRepository) GetByUserID(userID int64) (models.Operator, error) {
	row := r.db().QueryRow(`SELECT `+operatorColumns+` FROM operators WHERE user_id=? LIMIT 1`, userID)
	o, err := scanOperator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Operator{}, domain.NotFoundError{Resource: "operator", Err: err}
		}
		return models.Operator{}, err
	}
	return o, nil
}

func (r OperatorRepository) List(status string) ([]models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += ` WHERE status=?`
		args = append(args, s)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Operator{}
	for rows.Next() {
		o, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r OperatorRepository) Create(o models.Operator) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO operators (user_id, name, email, phone, country, status, created_at)
		VALUES (?,?,?,?,?,?,NOW())`,
		o.UserID, o.Name, o.Email, o.Phone, o.Country, o.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r OperatorRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE operators SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// status may already equal the requested value; treat a missing row
		// as the only failure worth reporting
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM operators WHERE id=?`, id).Scan(&exists); err == nil && exists == 0 {
			return domain.NotFoundError{Resource: "operator"}
		}
	}
	return nil
}
