package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/email"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
)

// RegisterRatingRoutes registers the public submission endpoint
func RegisterRatingRoutes(router *gin.RouterGroup) {
	router.POST("/ratings", createRating)
}

// RegisterProtectedRatingRoutes registers the authenticated, scope-filtered
// rating endpoints
func RegisterProtectedRatingRoutes(router *gin.RouterGroup) {
	router.GET("/ratings", listRatings)
	router.GET("/user/ratings", listOwnRatings)
	router.GET("/user/complaints", listOwnComplaints)
}

// validateResponses checks a submission's responses against the active
// questions of the agent's department: one response per active question, no
// duplicates, no unknown or inactive questions. Returns a caller-facing
// message when invalid.
func validateResponses(responses []models.ResponseInput, activeQuestions []models.Question) (string, bool) {
	if len(responses) == 0 {
		return "At least one response is required", false
	}

	active := make(map[uint]bool, len(activeQuestions))
	for _, q := range activeQuestions {
		active[q.ID] = true
	}

	seen := make(map[uint]bool, len(responses))
	for _, r := range responses {
		if r.Score < 1 || r.Score > 5 {
			return "Scores must be between 1 and 5", false
		}
		if !active[r.QuestionID] {
			return fmt.Sprintf("Question %d is not an active question for this agent", r.QuestionID), false
		}
		if seen[r.QuestionID] {
			return fmt.Sprintf("Duplicate response for question %d", r.QuestionID), false
		}
		seen[r.QuestionID] = true
	}

	if len(seen) != len(activeQuestions) {
		return "A response is required for every active question", false
	}

	return "", true
}

// createRating is the one unauthenticated write in the system: a customer
// submits scores for an agent. Validation happens before any write and the
// rating plus its responses are committed in a single transaction.
func createRating(c *gin.Context) {
	var req models.RatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating data", "message": err.Error()})
		return
	}

	if !req.IsAnonymous && req.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Customer name required",
			"message": "Provide a customer name or submit anonymously",
		})
		return
	}

	var agent models.User
	err := database.DB.Preload("Department").
		Where("id = ? AND role = ? AND status = ?", req.AgentID, models.RoleAgent, models.StatusApproved).
		First(&agent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		}
		return
	}

	if agent.DepartmentID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent"})
		return
	}

	var activeQuestions []models.Question
	if err := database.DB.
		Where("department_id = ? AND is_active = ?", *agent.DepartmentID, true).
		Find(&activeQuestions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	if msg, ok := validateResponses(req.Responses, activeQuestions); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid responses", "message": msg})
		return
	}

	rating := models.Rating{
		AgentID:         agent.ID,
		DepartmentID:    *agent.DepartmentID,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PolicyNumber:    req.PolicyNumber,
		IsAnonymous:     req.IsAnonymous,
		IsComplaint:     req.IsComplaint,
		FeedbackText:    req.FeedbackText,
		IPAddress:       c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
	}
	if req.IsComplaint {
		status := models.ComplaintOpen
		rating.ComplaintStatus = &status
	}
	for _, r := range req.Responses {
		rating.Responses = append(rating.Responses, models.Response{
			QuestionID: r.QuestionID,
			Score:      r.Score,
		})
	}

	// Rating and responses land together or not at all
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rating).Error
	}); err != nil {
		log.Printf("❌ Failed to create rating: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	averageScore := services.AverageScore(rating.Responses)

	displayName := req.CustomerName
	if req.IsAnonymous || displayName == "" {
		displayName = "an anonymous customer"
	}

	kind := "rating"
	title := "New Rating Received"
	ntype := models.NotificationRating
	if req.IsComplaint {
		kind = "complaint"
		title = "New Complaint Received"
		ntype = models.NotificationComplaint
	}

	if err := services.Notify(agent.ID, title,
		fmt.Sprintf("You received a new %s from %s", kind, displayName),
		ntype, "/dashboard/my-ratings"); err != nil {
		log.Printf("❌ Failed to notify agent %d: %v", agent.ID, err)
	}

	if req.IsComplaint {
		services.NotifyDepartmentHODs(*agent.DepartmentID, "New Complaint in Your Department",
			fmt.Sprintf("A complaint was filed against %s", agent.Name),
			models.NotificationComplaint, "/dashboard/complaints")
	}

	// Best-effort email; never fails the submission
	go func(toEmail, agentName string, avg float64, isComplaint bool) {
		if err := email.SendNewRatingNotification(toEmail, agentName, avg, isComplaint); err != nil {
			log.Printf("⚠️ Failed to send rating email to %s: %v", toEmail, err)
		}
	}(agent.Email, agent.Name, averageScore, req.IsComplaint)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating submitted successfully",
		"rating": gin.H{
			"id":            rating.ID,
			"average_score": averageScore,
		},
	})
}

// parseRatingFilters builds the common filter set for rating listings
func parseRatingFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if agentID, err := strconv.ParseUint(c.Query("agent_id"), 10, 32); err == nil {
		query = query.Where("ratings.agent_id = ?", agentID)
	}
	if departmentID, err := strconv.ParseUint(c.Query("department_id"), 10, 32); err == nil {
		query = query.Where("ratings.department_id = ?", departmentID)
	}
	if isComplaint := c.Query("is_complaint"); isComplaint != "" {
		query = query.Where("ratings.is_complaint = ?", isComplaint == "true")
	}
	return query
}

// listRatings returns ratings visible to the caller, newest first.
// Scoping is applied before any filter or pagination.
func listRatings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query, err := services.ScopeRatings(database.DB.Model(&models.Rating{}), user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query = parseRatingFilters(c, query)

	page, limit, offset := pagination(c, 50)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	var ratings []models.Rating
	if err := query.
		Preload("Agent").
		Preload("Department").
		Preload("Responses.Question").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":    ratings,
		"pagination": paginationMeta(page, limit, total),
	})
}

// listOwnRatings is the self view: agents see ratings they received; other
// staff see ratings they submitted as customers, matched by contact or name.
// The customer match is best-effort identity, not a guarantee.
func listOwnRatings(c *gin.Context) {
	listSelf(c, false)
}

// listOwnComplaints is the complaint-only self view
func listOwnComplaints(c *gin.Context) {
	listSelf(c, true)
}

func listSelf(c *gin.Context, complaintsOnly bool) {
	user := middleware.CurrentUser(c)

	query := database.DB.Model(&models.Rating{})
	if user.IsAgent() {
		query = query.Where("ratings.agent_id = ?", user.ID)
	} else {
		query = query.Where("ratings.customer_contact = ? OR ratings.customer_name = ?", user.Email, user.Name)
	}
	if complaintsOnly {
		query = query.Where("ratings.is_complaint = ?", true)
	}

	page, limit, offset := pagination(c, 10)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	var ratings []models.Rating
	if err := query.
		Preload("Agent").
		Preload("Department").
		Preload("Responses.Question").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":    ratings,
		"pagination": paginationMeta(page, limit, total),
	})
}

// pagination reads page/limit query parameters with sane bounds
func pagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	return page, limit, (page - 1) * limit
}

// paginationMeta is the standard pagination envelope
func paginationMeta(page, limit int, total int64) gin.H {
	return gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": (total + int64(limit) - 1) / int64(limit),
	}
}
