package employee

import (
	"fmt"
	"time"
)

// Role is the closed set of review-hierarchy roles. Anything outside this
// set is rejected at parse time so the authorizer never sees an unknown role.
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RolePresident Role = "president"
	RoleBoss      Role = "boss"
)

var allRoles = map[Role]struct{}{
	RoleEmployee:  {},
	RoleManager:   {},
	RoleAdmin:     {},
	RolePresident: {},
	RoleBoss:      {},
}

func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if _, ok := allRoles[role]; !ok {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

type Employee struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	DepartmentID *string   `json:"departmentId"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
