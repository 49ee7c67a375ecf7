package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"perfpoints/internal/domain/auth"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/platform/config"
)

type seedStandard struct {
	name       string
	parent     string // empty = root
	pointValue string // empty = formula-driven, stored as NULL
	inputType  string
	pointsType string
	sortOrder  int
}

var seedStandards = []seedStandard{
	{name: "Daily Work", inputType: "checkbox", pointsType: "general", sortOrder: 1},
	{name: "Attendance", parent: "Daily Work", pointValue: "1.00", inputType: "checkbox", pointsType: "general", sortOrder: 1},
	{name: "Report Submitted", parent: "Daily Work", pointValue: "2.00", inputType: "checkbox", pointsType: "general", sortOrder: 2},
	{name: "Professional Work", inputType: "checkbox", pointsType: "professional", sortOrder: 2},
	{name: "Client Deliverable", parent: "Professional Work", pointValue: "4.00", inputType: "number", pointsType: "professional", sortOrder: 1},
	{name: "Technical Review", parent: "Professional Work", pointValue: "3.00", inputType: "checkbox", pointsType: "professional", sortOrder: 2},
	{name: "Management", inputType: "checkbox", pointsType: "management", sortOrder: 3},
	{name: "Team One-on-One", parent: "Management", pointValue: "1.50", inputType: "number", pointsType: "management", sortOrder: 1},
	{name: "Core Values", inputType: "checkbox", pointsType: "core", sortOrder: 4},
	{name: "Quarterly Assessment", parent: "Core Values", pointValue: "10.00", inputType: "number", pointsType: "core", sortOrder: 1},
}

var seedCategories = []struct {
	name       string
	pointsType string
	multiplier string
}{
	{name: "General Duties", pointsType: "general", multiplier: "1.00"},
	{name: "Professional Output", pointsType: "professional", multiplier: "1.20"},
	{name: "Management Duties", pointsType: "management", multiplier: "1.10"},
	{name: "Core Values", pointsType: "core", multiplier: "1.50"},
}

// Seed provisions the minimal data a fresh deployment needs: one department,
// one account per role, the standard tree and the category table. Every step
// is idempotent so the seeder can run on each boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	departmentID, err := ensureDepartment(ctx, pool, "Engineering")
	if err != nil {
		return err
	}

	password := cfg.SeedPassword
	if strings.TrimSpace(password) == "" {
		password = "changeme"
	}
	accounts := []struct {
		email string
		name  string
		role  employee.Role
	}{
		{email: "employee@perfpoints.local", name: "Evan Employee", role: employee.RoleEmployee},
		{email: "manager@perfpoints.local", name: "Morgan Manager", role: employee.RoleManager},
		{email: "admin@perfpoints.local", name: "Avery Admin", role: employee.RoleAdmin},
		{email: "president@perfpoints.local", name: "Parker President", role: employee.RolePresident},
		{email: "boss@perfpoints.local", name: "Blake Boss", role: employee.RoleBoss},
	}
	for _, account := range accounts {
		if err := ensureEmployee(ctx, pool, departmentID, account.email, account.name, account.role, password); err != nil {
			return err
		}
	}

	if err := ensureStandards(ctx, pool); err != nil {
		return err
	}
	return ensureCategories(ctx, pool)
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, departmentID, email, fullName string, role employee.Role, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO employees (email, full_name, password_hash, role, department_id)
    VALUES ($1, $2, $3, $4, $5)
  `, email, fullName, hash, string(role), departmentID)
	return err
}

func ensureStandards(ctx context.Context, pool *pgxpool.Pool) error {
	ids := map[string]int64{}
	for _, std := range seedStandards {
		var id int64
		err := pool.QueryRow(ctx, "SELECT id FROM standard_settings WHERE name = $1", std.name).Scan(&id)
		if err == nil {
			ids[std.name] = id
			continue
		}

		var parentID any
		if std.parent != "" {
			parent, ok := ids[std.parent]
			if !ok {
				// parents are listed before their children; a miss means the
				// row already existed under a different seed run, look it up
				if err := pool.QueryRow(ctx, "SELECT id FROM standard_settings WHERE name = $1", std.parent).Scan(&parent); err != nil {
					return err
				}
			}
			parentID = parent
		}
		var pointValue any
		if std.pointValue != "" {
			pointValue = std.pointValue
		}

		err = pool.QueryRow(ctx, `
      INSERT INTO standard_settings (name, parent_id, point_value, input_type, points_type, sort_order)
      VALUES ($1, $2, $3::numeric, $4, $5, $6)
      RETURNING id
    `, std.name, parentID, pointValue, std.inputType, std.pointsType, std.sortOrder).Scan(&id)
		if err != nil {
			return err
		}
		ids[std.name] = id
	}
	return nil
}

func ensureCategories(ctx context.Context, pool *pgxpool.Pool) error {
	for _, category := range seedCategories {
		_, err := pool.Exec(ctx, `
      INSERT INTO points_categories (name, points_type, multiplier)
      VALUES ($1, $2, $3::numeric)
      ON CONFLICT (name) DO NOTHING
    `, category.name, category.pointsType, category.multiplier)
		if err != nil {
			return err
		}
	}
	return nil
}
