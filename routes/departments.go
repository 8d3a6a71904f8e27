package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
)

// RegisterDepartmentRoutes registers the public active-department listing
func RegisterDepartmentRoutes(router *gin.RouterGroup) {
	router.GET("/departments", listDepartments)
}

// RegisterAdminDepartmentRoutes registers ADMIN-only department management
func RegisterAdminDepartmentRoutes(router *gin.RouterGroup) {
	departments := router.Group("/departments")
	departments.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		departments.POST("", createDepartment)
		departments.PUT("/:id", updateDepartment)
		departments.DELETE("/:id", deleteDepartment)
	}
}

// listDepartments returns active departments, optionally with user and
// question counts for the admin screens
func listDepartments(c *gin.Context) {
	var departments []models.Department
	if err := database.DB.Where("is_active = ?", true).
		Order("name ASC").
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	if c.Query("include_stats") != "true" {
		c.JSON(http.StatusOK, departments)
		return
	}

	type departmentWithCounts struct {
		models.Department
		UserCount     int64 `json:"user_count"`
		QuestionCount int64 `json:"question_count"`
	}

	result := make([]departmentWithCounts, 0, len(departments))
	for _, dept := range departments {
		row := departmentWithCounts{Department: dept}
		database.DB.Model(&models.User{}).Where("department_id = ?", dept.ID).Count(&row.UserCount)
		database.DB.Model(&models.Question{}).Where("department_id = ?", dept.ID).Count(&row.QuestionCount)
		result = append(result, row)
	}

	c.JSON(http.StatusOK, result)
}

// createDepartment creates a new department
func createDepartment(c *gin.Context) {
	var req models.DepartmentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	var existing models.Department
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Department already exists",
			"message": "A department with this name already exists",
		})
		return
	}

	department := models.Department{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&department).Error; err != nil {
		log.Printf("❌ Failed to create department: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, department)
}

// updateDepartment updates name, description or active flag
func updateDepartment(c *gin.Context) {
	departmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	var department models.Department
	if err := database.DB.First(&department, departmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		}
		return
	}

	var req models.DepartmentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	if req.Name != "" && req.Name != department.Name {
		var existing models.Department
		if err := database.DB.Where("name = ? AND id <> ?", req.Name, department.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Department already exists",
				"message": "A department with this name already exists",
			})
			return
		}
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&department).Updates(updates).Error; err != nil {
			log.Printf("❌ Failed to update department %d: %v", department.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
			return
		}
	}

	c.JSON(http.StatusOK, department)
}

// deleteDepartment removes a department, refusing while users still
// reference it
func deleteDepartment(c *gin.Context) {
	departmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	var department models.Department
	if err := database.DB.First(&department, departmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		}
		return
	}

	var userCount int64
	database.DB.Model(&models.User{}).Where("department_id = ?", department.ID).Count(&userCount)
	if userCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Department has assigned users",
			"message": fmt.Sprintf("Cannot delete department with %d assigned users. Reassign users first or deactivate the department.", userCount),
		})
		return
	}

	if err := database.DB.Delete(&department).Error; err != nil {
		log.Printf("❌ Failed to delete department %d: %v", department.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
