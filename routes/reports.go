package routes

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
)

// RegisterReportRoutes registers Excel report generation for admins
func RegisterReportRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	reports.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		reports.POST("/generate", generateReport)
	}
}

type reportRequest struct {
	DepartmentID      *uint  `json:"department_id"`
	AgentIDs          []uint `json:"agent_ids"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	IncludeRatings    *bool  `json:"include_ratings"`
	IncludeComplaints *bool  `json:"include_complaints"`
}

// generateReport streams an xlsx workbook with a Ratings sheet and a
// Complaints sheet, filtered by department, agents and date range
func generateReport(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !services.CanExportReports(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	includeRatings := req.IncludeRatings == nil || *req.IncludeRatings
	includeComplaints := req.IncludeComplaints == nil || *req.IncludeComplaints
	if !includeRatings && !includeComplaints {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to export"})
		return
	}

	query := database.DB.Model(&models.Rating{}).
		Preload("Agent").
		Preload("Department").
		Preload("Responses").
		Preload("Responses.Question")

	if req.DepartmentID != nil {
		query = query.Where("ratings.department_id = ?", *req.DepartmentID)
	}
	if len(req.AgentIDs) > 0 {
		query = query.Where("ratings.agent_id IN ?", req.AgentIDs)
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("ratings.created_at >= ?", start)
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}
		// inclusive end date
		query = query.Where("ratings.created_at < ?", end.AddDate(0, 0, 1))
	}

	var ratings []models.Rating
	if err := query.Order("ratings.created_at DESC").Find(&ratings).Error; err != nil {
		log.Printf("❌ Report query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	firstSheet := ""
	if includeRatings {
		if err := writeRatingsSheet(workbook, ratings); err != nil {
			log.Printf("❌ Report workbook failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}
		firstSheet = "Ratings"
	}
	if includeComplaints {
		if err := writeComplaintsSheet(workbook, ratings); err != nil {
			log.Printf("❌ Report workbook failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}
		if firstSheet == "" {
			firstSheet = "Complaints"
		}
	}

	workbook.DeleteSheet("Sheet1")
	if index, err := workbook.GetSheetIndex(firstSheet); err == nil {
		workbook.SetActiveSheet(index)
	}

	filename := fmt.Sprintf("ratings-report-%s.xlsx", uuid.NewString())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("❌ Failed to stream report: %v", err)
	}
}

func writeRatingsSheet(workbook *excelize.File, ratings []models.Rating) error {
	const sheet = "Ratings"
	if _, err := workbook.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"Rating ID", "Date", "Agent", "Department", "Customer", "Contact",
		"Policy Number", "Anonymous", "Average Score", "Responses", "Complaint", "Feedback",
	}
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rating := range ratings {
		customer := rating.CustomerName
		contact := rating.CustomerContact
		if rating.IsAnonymous {
			customer = "Anonymous"
			contact = ""
		}

		row := []interface{}{
			rating.ID,
			rating.CreatedAt.UTC().Format("2006-01-02 15:04"),
			rating.Agent.Name,
			rating.Department.Name,
			customer,
			contact,
			rating.PolicyNumber,
			rating.IsAnonymous,
			services.Round1(services.AverageScore(rating.Responses)),
			flattenResponses(rating.Responses),
			rating.IsComplaint,
			rating.FeedbackText,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// flattenResponses renders a rating's question scores into one cell
func flattenResponses(responses []models.Response) string {
	parts := make([]string, 0, len(responses))
	for _, r := range responses {
		text := r.Question.QuestionText
		if text == "" {
			text = fmt.Sprintf("Question %d", r.QuestionID)
		}
		parts = append(parts, fmt.Sprintf("%s: %d", text, r.Score))
	}
	return strings.Join(parts, "; ")
}

func writeComplaintsSheet(workbook *excelize.File, ratings []models.Rating) error {
	const sheet = "Complaints"
	if _, err := workbook.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"Rating ID", "Date", "Agent", "Department", "Customer",
		"Status", "Resolved At", "Feedback",
	}
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	rowIndex := 2
	for _, rating := range ratings {
		if !rating.IsComplaint {
			continue
		}

		status := ""
		if rating.ComplaintStatus != nil {
			status = string(*rating.ComplaintStatus)
		}
		resolvedAt := ""
		if rating.ResolvedAt != nil {
			resolvedAt = rating.ResolvedAt.UTC().Format("2006-01-02 15:04")
		}
		customer := rating.CustomerName
		if rating.IsAnonymous {
			customer = "Anonymous"
		}

		row := []interface{}{
			rating.ID,
			rating.CreatedAt.UTC().Format("2006-01-02 15:04"),
			rating.Agent.Name,
			rating.Department.Name,
			customer,
			status,
			resolvedAt,
			rating.FeedbackText,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		rowIndex++
	}

	return nil
}
