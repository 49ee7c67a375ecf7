package points

import "perfpoints/internal/domain/employee"

// Party is the minimal identity the authorizer needs about either side of a
// review: who they are, what they are, and where they sit.
type Party struct {
	ID           string
	Role         employee.Role
	DepartmentID string
}

func PartyOf(e employee.Employee) Party {
	p := Party{ID: e.ID, Role: e.Role}
	if e.DepartmentID != nil {
		p.DepartmentID = *e.DepartmentID
	}
	return p
}

// reviewRule is one tier of the hierarchy. Rules are evaluated in order;
// the first whose reviewer role matches decides via its predicate fields.
// Unmatched combinations are denied.
type reviewRule struct {
	reviewer       employee.Role
	submitterRoles []employee.Role // nil = any role
	excludeRoles   []employee.Role
	sameDepartment bool
}

var reviewHierarchy = []reviewRule{
	{reviewer: employee.RoleBoss},
	{reviewer: employee.RolePresident, excludeRoles: []employee.Role{employee.RoleBoss, employee.RolePresident}},
	{reviewer: employee.RoleAdmin, submitterRoles: []employee.Role{employee.RoleEmployee, employee.RoleManager}, sameDepartment: true},
	{reviewer: employee.RoleManager, submitterRoles: []employee.Role{employee.RoleEmployee}, sameDepartment: true},
}

// CanReview implements the five-tier hierarchy. Self-review is checked
// first and is allowed only for the boss; everything not explicitly granted
// by the hierarchy table is denied.
func CanReview(reviewer, submitter Party) bool {
	if reviewer.ID == submitter.ID {
		return reviewer.Role == employee.RoleBoss
	}

	for _, rule := range reviewHierarchy {
		if rule.reviewer != reviewer.Role {
			continue
		}
		if containsRole(rule.excludeRoles, submitter.Role) {
			return false
		}
		if rule.submitterRoles != nil && !containsRole(rule.submitterRoles, submitter.Role) {
			return false
		}
		if rule.sameDepartment && (reviewer.DepartmentID == "" || reviewer.DepartmentID != submitter.DepartmentID) {
			return false
		}
		return true
	}
	return false
}

// ReviewableDepartments reports which departments a reviewer may see:
// nil means all departments, a concrete list means exactly those, and an
// empty non-nil list means none.
func ReviewableDepartments(reviewer Party) []string {
	switch reviewer.Role {
	case employee.RoleBoss, employee.RolePresident:
		return nil
	case employee.RoleAdmin, employee.RoleManager:
		if reviewer.DepartmentID == "" {
			return []string{}
		}
		return []string{reviewer.DepartmentID}
	default:
		return []string{}
	}
}

func containsRole(roles []employee.Role, role employee.Role) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
