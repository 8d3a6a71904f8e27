package routes

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/models"
)

func TestDeleteUserWithRatings(t *testing.T) {
	setupTestDB(t)

	dept := models.Department{Name: "Claims", IsActive: true}
	if err := database.DB.Create(&dept).Error; err != nil {
		t.Fatalf("failed to create department: %v", err)
	}

	admin := models.User{
		Name: "Admin", Email: "admin@test.local", PasswordHash: "x",
		Role: models.RoleAdmin, Status: models.StatusApproved,
	}
	agent := models.User{
		Name: "Agent", Email: "agent@test.local", PasswordHash: "x",
		Role: models.RoleAgent, Status: models.StatusApproved, DepartmentID: &dept.ID,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	if err := database.DB.Create(&agent).Error; err != nil {
		t.Fatalf("failed to create agent: %v", err)
	}

	question := models.Question{DepartmentID: dept.ID, QuestionText: "How was the service?", Order: 1, IsActive: true}
	if err := database.DB.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	rating := models.Rating{
		AgentID:      agent.ID,
		DepartmentID: dept.ID,
		CustomerName: "Customer",
		Responses:    []models.Response{{QuestionID: question.ID, Score: 4}},
	}
	if err := database.DB.Create(&rating).Error; err != nil {
		t.Fatalf("failed to create rating: %v", err)
	}

	// Deletion is permanent even when the agent has recorded ratings; the
	// owned rows cascade through the store's foreign keys.
	w := runHandler(t, deleteUser, http.MethodDelete, agent.ID, "", &admin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var gone models.User
	if err := database.DB.First(&gone, agent.ID).Error; err != gorm.ErrRecordNotFound {
		t.Errorf("agent still present after delete (err = %v)", err)
	}
}

func TestDeleteUserSelf(t *testing.T) {
	setupTestDB(t)

	admin := models.User{
		Name: "Admin", Email: "admin@test.local", PasswordHash: "x",
		Role: models.RoleAdmin, Status: models.StatusApproved,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	w := runHandler(t, deleteUser, http.MethodDelete, admin.ID, "", &admin)
	if w.Code != http.StatusConflict {
		t.Errorf("self-delete status = %d, want %d", w.Code, http.StatusConflict)
	}
}
