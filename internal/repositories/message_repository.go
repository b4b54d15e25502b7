package repositories

import (
	"database/sql"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r MessageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByEnquiry returns the chat thread in creation order. Messages are
// immutable; there is no update or delete path.
func (r MessageRepository) ListByEnquiry(quoteRequestID int64) ([]models.Message, error) {
	rows, err := r.db().Query(`
		SELECT id, quote_request_id, sender_role, COALESCE(sender_id,0), body, created_at
		FROM messages WHERE quote_request_id=? ORDER BY created_at ASC, id ASC`,
		quoteRequestID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.QuoteRequestID, &m.SenderRole, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MessageRepository) Create(m models.Message) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO messages (quote_request_id, sender_role, sender_id, body, created_at)
		VALUES (?,?,?,?,NOW())`,
		m.QuoteRequestID, m.SenderRole, nullableID(m.SenderID), m.Body,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
