package services

import (
	"errors"

	"gorm.io/gorm"

	"frontline-rating-server/models"
)

// Authorization scoping lives here and nowhere else. Handlers never compare
// role strings; they ask these functions and apply ScopeRatings before any
// listing or aggregation touches the rows.

// ErrNoDepartment is returned when an HOD or agent has no department assigned
var ErrNoDepartment = errors.New("no department assigned")

// CanManageUsers reports whether the actor may approve, reject or delete accounts
func CanManageUsers(actor *models.User) bool {
	return actor.IsAdmin()
}

// CanManageDepartments reports whether the actor may create, update or delete departments
func CanManageDepartments(actor *models.User) bool {
	return actor.IsAdmin()
}

// CanManageQuestion reports whether the actor may create, update or delete
// questions belonging to the given department
func CanManageQuestion(actor *models.User, departmentID uint) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsHOD() && actor.DepartmentID != nil && *actor.DepartmentID == departmentID
}

// CanResolveComplaint reports whether the actor may resolve the given rating's
// complaint. Existence, complaint flag and department scope are checked
// together so a denied HOD learns nothing about other departments' rows.
func CanResolveComplaint(actor *models.User, rating *models.Rating) bool {
	if rating == nil || !rating.IsComplaint {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.IsHOD() && actor.DepartmentID != nil && *actor.DepartmentID == rating.DepartmentID
}

// CanExportReports reports whether the actor may download spreadsheet reports
func CanExportReports(actor *models.User) bool {
	return actor.IsAdmin()
}

// ScopeRatings narrows a ratings query to the rows the actor may see:
// admins see everything, HODs their department, agents their own ratings.
func ScopeRatings(query *gorm.DB, actor *models.User) (*gorm.DB, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return query, nil
	case models.RoleHOD:
		if actor.DepartmentID == nil {
			return nil, ErrNoDepartment
		}
		return query.Where("ratings.department_id = ?", *actor.DepartmentID), nil
	case models.RoleAgent:
		return query.Where("ratings.agent_id = ?", actor.ID), nil
	default:
		return nil, errors.New("unknown role")
	}
}
