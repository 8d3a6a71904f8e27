package services

import (
	"testing"

	"frontline-rating-server/models"
)

func deptPtr(id uint) *uint { return &id }

func TestCanManageQuestion(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	hod := &models.User{Role: models.RoleHOD, DepartmentID: deptPtr(7)}
	hodNoDept := &models.User{Role: models.RoleHOD}
	agent := &models.User{Role: models.RoleAgent, DepartmentID: deptPtr(7)}

	cases := []struct {
		name         string
		actor        *models.User
		departmentID uint
		want         bool
	}{
		{"admin any department", admin, 99, true},
		{"hod own department", hod, 7, true},
		{"hod other department", hod, 8, false},
		{"hod without department", hodNoDept, 7, false},
		{"agent own department", agent, 7, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanManageQuestion(tc.actor, tc.departmentID); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanResolveComplaint(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	hod := &models.User{Role: models.RoleHOD, DepartmentID: deptPtr(3)}
	agent := &models.User{Role: models.RoleAgent, ID: 12}

	complaint := &models.Rating{ID: 1, DepartmentID: 3, AgentID: 12, IsComplaint: true}
	otherDeptComplaint := &models.Rating{ID: 2, DepartmentID: 4, IsComplaint: true}
	plainRating := &models.Rating{ID: 3, DepartmentID: 3, IsComplaint: false}

	cases := []struct {
		name   string
		actor  *models.User
		rating *models.Rating
		want   bool
	}{
		{"admin resolves any complaint", admin, complaint, true},
		{"admin cannot resolve a non-complaint", admin, plainRating, false},
		{"hod resolves own department", hod, complaint, true},
		{"hod denied across departments", hod, otherDeptComplaint, false},
		{"agent never resolves, even own rating", agent, complaint, false},
		{"nil rating", admin, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanResolveComplaint(tc.actor, tc.rating); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAdminOnlyPolicies(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	hod := &models.User{Role: models.RoleHOD, DepartmentID: deptPtr(1)}
	agent := &models.User{Role: models.RoleAgent}

	for _, actor := range []*models.User{hod, agent} {
		if CanManageUsers(actor) {
			t.Errorf("%s should not manage users", actor.Role)
		}
		if CanManageDepartments(actor) {
			t.Errorf("%s should not manage departments", actor.Role)
		}
		if CanExportReports(actor) {
			t.Errorf("%s should not export reports", actor.Role)
		}
	}

	if !CanManageUsers(admin) || !CanManageDepartments(admin) || !CanExportReports(admin) {
		t.Error("admin should hold every management permission")
	}
}
