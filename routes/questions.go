package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
)

// RegisterQuestionRoutes registers question management for HODs and admins
func RegisterQuestionRoutes(router *gin.RouterGroup) {
	questions := router.Group("/questions")
	questions.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleHOD))
	{
		questions.GET("", listQuestions)
		questions.POST("", createQuestion)
		questions.PUT("/:id", updateQuestion)
		questions.DELETE("/:id", deleteQuestion)
	}
}

// listQuestions returns the caller's department questions, or every
// department's questions for admins
func listQuestions(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := database.DB.Model(&models.Question{}).Preload("Department")
	if user.IsHOD() {
		if user.DepartmentID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department assigned"})
			return
		}
		query = query.Where("department_id = ?", *user.DepartmentID)
	} else if departmentID := c.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var questions []models.Question
	if err := query.Order("department_id ASC, display_order ASC").Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, questions)
}

// createQuestion adds a question at the end of the department's order
func createQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.QuestionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	// HODs always create for their own department; admins must say which
	var departmentID uint
	switch {
	case user.IsHOD():
		if user.DepartmentID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department assigned"})
			return
		}
		departmentID = *user.DepartmentID
	case req.DepartmentID != nil:
		departmentID = *req.DepartmentID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "departmentId is required"})
		return
	}

	var department models.Department
	if err := database.DB.First(&department, departmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var maxOrder struct {
		Max int
	}
	database.DB.Model(&models.Question{}).
		Select("COALESCE(MAX(display_order), 0) AS max").
		Where("department_id = ?", departmentID).
		Scan(&maxOrder)

	question := models.Question{
		QuestionText: req.QuestionText,
		DepartmentID: departmentID,
		Order:        maxOrder.Max + 1,
		IsActive:     true,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&question).Error; err != nil {
		log.Printf("❌ Failed to create question: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// updateQuestion edits text, order or active flag within the caller's scope
func updateQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := database.DB.First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		}
		return
	}

	if !services.CanManageQuestion(user, question.DepartmentID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var req models.QuestionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.QuestionText != "" {
		updates["question_text"] = req.QuestionText
	}
	if req.Order != nil {
		updates["display_order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&question).Updates(updates).Error; err != nil {
			log.Printf("❌ Failed to update question %d: %v", question.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
			return
		}
	}

	c.JSON(http.StatusOK, question)
}

// deleteQuestion removes a question unless ratings already reference it
func deleteQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := database.DB.First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		}
		return
	}

	if !services.CanManageQuestion(user, question.DepartmentID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var responseCount int64
	database.DB.Model(&models.Response{}).Where("question_id = ?", question.ID).Count(&responseCount)
	if responseCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Question has recorded responses",
			"message": "Deactivate the question instead of deleting it to keep historical ratings intact",
		})
		return
	}

	if err := database.DB.Delete(&question).Error; err != nil {
		log.Printf("❌ Failed to delete question %d: %v", question.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
