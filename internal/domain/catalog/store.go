package catalog

import (
	"context"
	"errors"

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

const standardColumns = `
  id, name, parent_id, point_value::text, input_type, points_type, sort_order, is_active, created_at`

func scanStandard(row pgx.Row) (Standard, error) {
	var std Standard
	var pointValue *string
	if err := row.Scan(&std.ID, &std.Name, &std.ParentID, &pointValue, &std.InputType, &std.PointsType, &std.SortOrder, &std.IsActive, &std.CreatedAt); err != nil {
		return Standard{}, err
	}
	if pointValue != nil {
		parsed, err := decimal.NewFromString(*pointValue)
		if err != nil {
			return Standard{}, err
		}
		std.PointValue = &parsed
	}
	return std, nil
}

func (s *Store) ListStandards(ctx context.Context, includeInactive bool) ([]Standard, error) {
	query := "SELECT" + standardColumns + " FROM standard_settings"
	if !includeInactive {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY sort_order, name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standard
	for rows.Next() {
		std, err := scanStandard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, std)
	}
	return out, rows.Err()
}

func (s *Store) GetStandard(ctx context.Context, id int64) (Standard, error) {
	std, err := scanStandard(s.DB.QueryRow(ctx, "SELECT"+standardColumns+" FROM standard_settings WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Standard{}, ErrStandardNotFound
	}
	return std, err
}

func (s *Store) CreateStandard(ctx context.Context, std Standard) (int64, error) {
	var pointValue *string
	if std.PointValue != nil {
		text := std.PointValue.StringFixed(2)
		pointValue = &text
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO standard_settings (name, parent_id, point_value, input_type, points_type, sort_order, is_active)
    VALUES ($1,$2,$3::numeric,$4,$5,$6,true)
    RETURNING id
  `, std.Name, std.ParentID, pointValue, std.InputType, std.PointsType, std.SortOrder).Scan(&id)
	return id, err
}

func (s *Store) UpdateStandard(ctx context.Context, std Standard) error {
	var pointValue *string
	if std.PointValue != nil {
		text := std.PointValue.StringFixed(2)
		pointValue = &text
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE standard_settings
    SET name = $1, parent_id = $2, point_value = $3::numeric, input_type = $4, points_type = $5, sort_order = $6
    WHERE id = $7
  `, std.Name, std.ParentID, pointValue, std.InputType, std.PointsType, std.SortOrder, std.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStandardNotFound
	}
	return nil
}

// DeactivateStandard soft-deletes: historical entries keep referencing the row.
func (s *Store) DeactivateStandard(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "UPDATE standard_settings SET is_active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStandardNotFound
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, points_type, multiplier::text
    FROM points_categories
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		var multiplier string
		if err := rows.Scan(&c.ID, &c.Name, &c.PointsType, &multiplier); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(multiplier)
		if err != nil {
			return nil, err
		}
		c.Multiplier = parsed
		out = append(out, c)
	}
	return out, rows.Err()
}
