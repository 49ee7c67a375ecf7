package points

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const entryColumns = `
  e.id, e.employee_id, e.standard_id, e.entry_date,
  e.base_points::text, e.bonus_points::text, e.penalty_points::text, e.points_earned::text,
  e.multiplier::text, e.description, e.evidence_files, e.status,
  e.reviewer_id, e.reviewed_at, e.review_comments, e.created_at`

const entryReturning = `
  id, employee_id, standard_id, entry_date,
  base_points::text, bonus_points::text, penalty_points::text, points_earned::text,
  multiplier::text, description, evidence_files, status,
  reviewer_id, reviewed_at, review_comments, created_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	var base, bonus, penalty, earned, multiplier string
	var evidence []byte
	if err := row.Scan(
		&e.ID, &e.EmployeeID, &e.StandardID, &e.EntryDate,
		&base, &bonus, &penalty, &earned,
		&multiplier, &e.Description, &evidence, &e.Status,
		&e.ReviewerID, &e.ReviewedAt, &e.ReviewComments, &e.CreatedAt,
	); err != nil {
		return Entry{}, err
	}

	var err error
	if e.BasePoints, err = decimal.NewFromString(base); err != nil {
		return Entry{}, err
	}
	if e.BonusPoints, err = decimal.NewFromString(bonus); err != nil {
		return Entry{}, err
	}
	if e.PenaltyPoints, err = decimal.NewFromString(penalty); err != nil {
		return Entry{}, err
	}
	if e.PointsEarned, err = decimal.NewFromString(earned); err != nil {
		return Entry{}, err
	}
	if e.Multiplier, err = decimal.NewFromString(multiplier); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal(evidence, &e.EvidenceFiles); err != nil {
		return Entry{}, fmt.Errorf("decode evidence files: %w", err)
	}
	return e, nil
}

func (s *Store) CreateEntry(ctx context.Context, entry Entry) (Entry, error) {
	evidence, err := json.Marshal(entry.EvidenceFiles)
	if err != nil {
		return Entry{}, err
	}
	if entry.EvidenceFiles == nil {
		evidence = []byte("[]")
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO points_entries (
      employee_id, standard_id, entry_date,
      base_points, bonus_points, penalty_points, points_earned,
      multiplier, description, evidence_files, status
    ) VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6::numeric,$7::numeric,$8::numeric,$9,$10,$11)
    RETURNING `+entryReturning+`
  `,
		entry.EmployeeID, entry.StandardID, entry.EntryDate,
		entry.BasePoints.StringFixed(2), entry.BonusPoints.StringFixed(2),
		entry.PenaltyPoints.StringFixed(2), entry.PointsEarned.StringFixed(2),
		entry.Multiplier.StringFixed(2), entry.Description, evidence, StatusPending,
	)
	return scanEntry(row)
}

func (s *Store) GetEntry(ctx context.Context, id string) (Entry, error) {
	entry, err := scanEntry(s.DB.QueryRow(ctx, "SELECT"+entryColumns+" FROM points_entries e WHERE e.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	return entry, err
}

func (s *Store) ListEntries(ctx context.Context, filter EntryFilter, limit, offset int) ([]EntryWithType, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	next := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EmployeeID != "" {
		where += " AND e.employee_id = " + next(filter.EmployeeID)
	}
	if filter.DepartmentIDs != nil {
		where += " AND emp.department_id = ANY(" + next(filter.DepartmentIDs) + ")"
	}
	if filter.Status != "" {
		where += " AND e.status = " + next(filter.Status)
	}

	base := `
    FROM points_entries e
    JOIN employees emp ON e.employee_id = emp.id
    JOIN standard_settings s ON e.standard_id = s.id
  ` + where

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + entryColumns + ", s.points_type" + base +
		" ORDER BY e.created_at DESC" +
		" LIMIT " + next(limit) + " OFFSET " + next(offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectEntriesWithType(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) TransitionFromPending(ctx context.Context, entryID, status, reviewerID, comments string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE points_entries
    SET status = $1, reviewer_id = $2, reviewed_at = $3, review_comments = NULLIF($4, '')
    WHERE id = $5 AND status = $6
  `, status, reviewerID, at, comments, entryID, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ApprovedInWindow(ctx context.Context, employeeID string, from, to time.Time) ([]EntryWithType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+entryColumns+`, s.points_type
    FROM points_entries e
    JOIN standard_settings s ON e.standard_id = s.id
    WHERE e.employee_id = $1 AND e.status = $2 AND e.entry_date >= $3 AND e.entry_date < $4
    ORDER BY e.entry_date
  `, employeeID, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntriesWithType(rows)
}

func (s *Store) ListRules(ctx context.Context) ([]CalculationRule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, rule_type, conditions, value::text, is_active
    FROM calculation_rules
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CalculationRule
	for rows.Next() {
		var r CalculationRule
		var value string
		if err := rows.Scan(&r.ID, &r.Name, &r.RuleType, &r.Conditions, &value, &r.IsActive); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return nil, err
		}
		r.Value = parsed
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateRule(ctx context.Context, rule CalculationRule) (int64, error) {
	conditions := rule.Conditions
	if len(conditions) == 0 {
		conditions = json.RawMessage("{}")
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO calculation_rules (name, rule_type, conditions, value, is_active)
    VALUES ($1,$2,$3,$4::numeric,true)
    RETURNING id
  `, rule.Name, rule.RuleType, conditions, rule.Value.StringFixed(2)).Scan(&id)
	return id, err
}

func collectEntriesWithType(rows pgx.Rows) ([]EntryWithType, error) {
	var out []EntryWithType
	for rows.Next() {
		var e Entry
		var base, bonus, penalty, earned, multiplier string
		var evidence []byte
		var pointsType string
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.StandardID, &e.EntryDate,
			&base, &bonus, &penalty, &earned,
			&multiplier, &e.Description, &evidence, &e.Status,
			&e.ReviewerID, &e.ReviewedAt, &e.ReviewComments, &e.CreatedAt,
			&pointsType,
		); err != nil {
			return nil, err
		}
		var err error
		if e.BasePoints, err = decimal.NewFromString(base); err != nil {
			return nil, err
		}
		if e.BonusPoints, err = decimal.NewFromString(bonus); err != nil {
			return nil, err
		}
		if e.PenaltyPoints, err = decimal.NewFromString(penalty); err != nil {
			return nil, err
		}
		if e.PointsEarned, err = decimal.NewFromString(earned); err != nil {
			return nil, err
		}
		if e.Multiplier, err = decimal.NewFromString(multiplier); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(evidence, &e.EvidenceFiles); err != nil {
			return nil, fmt.Errorf("decode evidence files: %w", err)
		}
		out = append(out, EntryWithType{Entry: e, PointsType: pointsType})
	}
	return out, rows.Err()
}
