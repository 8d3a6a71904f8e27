package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frontline-rating-server/database"
	"frontline-rating-server/models"
)

// setupTestDB points database.DB at an in-memory store for handler tests
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Question{},
		&models.Rating{},
		&models.Response{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
}

// runHandler invokes a gin handler with a path id parameter and an optional
// JSON body and authenticated user
func runHandler(t *testing.T, handler gin.HandlerFunc, method string, id uint, body string, actor *models.User) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(id), 10)}}
	if actor != nil {
		c.Set("user", *actor)
		c.Set("user_id", actor.ID)
	}

	handler(c)
	return w
}

func TestUpdateDepartmentDuplicateName(t *testing.T) {
	setupTestDB(t)

	claims := models.Department{Name: "Claims", IsActive: true}
	sales := models.Department{Name: "Sales", IsActive: true}
	if err := database.DB.Create(&claims).Error; err != nil {
		t.Fatalf("failed to create department: %v", err)
	}
	if err := database.DB.Create(&sales).Error; err != nil {
		t.Fatalf("failed to create department: %v", err)
	}

	w := runHandler(t, updateDepartment, http.MethodPut, sales.ID, `{"name":"Claims"}`, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("renaming to an existing name: status = %d, want %d (body: %s)",
			w.Code, http.StatusConflict, w.Body.String())
	}

	var unchanged models.Department
	if err := database.DB.First(&unchanged, sales.ID).Error; err != nil {
		t.Fatalf("failed to reload department: %v", err)
	}
	if unchanged.Name != "Sales" {
		t.Errorf("department renamed despite conflict: %q", unchanged.Name)
	}
}

func TestUpdateDepartmentKeepsOwnName(t *testing.T) {
	setupTestDB(t)

	claims := models.Department{Name: "Claims", Description: "old", IsActive: true}
	if err := database.DB.Create(&claims).Error; err != nil {
		t.Fatalf("failed to create department: %v", err)
	}

	// Re-submitting the current name alongside other edits must not conflict
	w := runHandler(t, updateDepartment, http.MethodPut, claims.ID, `{"name":"Claims","description":"new"}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var updated models.Department
	if err := database.DB.First(&updated, claims.ID).Error; err != nil {
		t.Fatalf("failed to reload department: %v", err)
	}
	if updated.Description != "new" {
		t.Errorf("description = %q, want %q", updated.Description, "new")
	}
}
