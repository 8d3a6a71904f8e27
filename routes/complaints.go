package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
)

// RegisterComplaintRoutes registers complaint listing and resolution
func RegisterComplaintRoutes(router *gin.RouterGroup) {
	complaints := router.Group("/complaints")
	{
		complaints.GET("", listComplaints)
		complaints.PUT("/:id/resolve", resolveComplaint)
	}
}

// listComplaints returns complaints visible to the caller, newest first
func listComplaints(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query, err := services.ScopeRatings(database.DB.Model(&models.Rating{}), user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query = query.Where("ratings.is_complaint = ?", true)

	if status := c.Query("status"); status == string(models.ComplaintOpen) || status == string(models.ComplaintResolved) {
		query = query.Where("ratings.complaint_status = ?", status)
	}

	page, limit, offset := pagination(c, 20)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	var complaints []models.Rating
	if err := query.
		Preload("Agent").
		Preload("Department").
		Preload("Responses.Question").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"pagination": paginationMeta(page, limit, total),
	})
}

// resolveComplaint moves an OPEN complaint to RESOLVED. A missing rating, a
// non-complaint rating and a complaint outside the caller's department all
// produce the same 404 so nothing leaks across departments. Resolving an
// already-resolved complaint succeeds without changing anything.
func resolveComplaint(c *gin.Context) {
	ratingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	user := middleware.CurrentUser(c)

	var complaint models.Rating
	if err := database.DB.Preload("Agent").First(&complaint, ratingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve complaint"})
		}
		return
	}

	if !services.CanResolveComplaint(user, &complaint) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	if !complaint.IsOpenComplaint() {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Complaint already resolved",
			"complaint": complaint,
		})
		return
	}

	now := time.Now().UTC()
	resolved := models.ComplaintResolved
	updates := map[string]interface{}{
		"complaint_status": resolved,
		"resolved_at":      now,
		"resolved_by":      user.ID,
	}
	if err := database.DB.Model(&complaint).Updates(updates).Error; err != nil {
		log.Printf("❌ Failed to resolve complaint %d: %v", complaint.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve complaint"})
		return
	}

	complaint.ComplaintStatus = &resolved
	complaint.ResolvedAt = &now
	complaint.ResolvedBy = &user.ID

	customerName := complaint.CustomerName
	if complaint.IsAnonymous || customerName == "" {
		customerName = "an anonymous customer"
	}
	if err := services.Notify(complaint.AgentID, "Complaint Resolved",
		fmt.Sprintf("A complaint from %s has been marked as resolved", customerName),
		models.NotificationComplaint, "/dashboard/my-ratings"); err != nil {
		log.Printf("❌ Failed to notify agent %d: %v", complaint.AgentID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint resolved successfully",
		"complaint": complaint,
	})
}
