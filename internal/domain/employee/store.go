package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetByID(ctx context.Context, id string) (Employee, error) {
	var out Employee
	var rawRole string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, full_name, role, department_id, is_active, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&out.ID, &out.Email, &out.FullName, &rawRole, &out.DepartmentID, &out.IsActive, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	role, err := ParseRole(rawRole)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %s: %w", id, err)
	}
	out.Role = role
	return out, nil
}

type AuthRecord struct {
	Employee
	PasswordHash string
}

func (s *Store) FindActiveByEmail(ctx context.Context, email string) (AuthRecord, error) {
	var out AuthRecord
	var rawRole string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, full_name, password_hash, role, department_id, is_active, created_at
    FROM employees
    WHERE email = $1 AND is_active = true
  `, email).Scan(&out.ID, &out.Email, &out.FullName, &out.PasswordHash, &rawRole, &out.DepartmentID, &out.IsActive, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AuthRecord{}, ErrNotFound
	}
	if err != nil {
		return AuthRecord{}, err
	}
	role, err := ParseRole(rawRole)
	if err != nil {
		return AuthRecord{}, err
	}
	out.Role = role
	return out, nil
}

func (s *Store) List(ctx context.Context, departmentID string) ([]Employee, error) {
	query := `
    SELECT id, email, full_name, role, department_id, is_active, created_at
    FROM employees
    WHERE is_active = true
  `
	args := []any{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY full_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		var rawRole string
		if err := rows.Scan(&e.ID, &e.Email, &e.FullName, &rawRole, &e.DepartmentID, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, err
		}
		role, err := ParseRole(rawRole)
		if err != nil {
			return nil, err
		}
		e.Role = role
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
