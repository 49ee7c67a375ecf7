package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is one recorded review decision. The entry itself carries the
// current reviewer fields; the audit table keeps the full history.
type Event struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entryId"`
	ReviewerID string    `json:"reviewerId"`
	Action     string    `json:"action"`
	Comments   *string   `json:"comments,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, entryID, reviewerID, action, comments, requestID string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO points_audit (entry_id, reviewer_id, action, comments, request_id)
    VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''))
  `, entryID, reviewerID, action, comments, requestID)
	return err
}

func (s *Service) ListForEntry(ctx context.Context, entryID string) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, entry_id, reviewer_id, action, comments, COALESCE(request_id, ''), created_at
    FROM points_audit
    WHERE entry_id = $1
    ORDER BY created_at
  `, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EntryID, &e.ReviewerID, &e.Action, &e.Comments, &e.RequestID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
