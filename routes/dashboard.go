package routes

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"frontline-rating-server/config"
	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
)

// RegisterDashboardRoutes registers the role-gated statistics endpoints.
// Every endpoint scopes its rows first and hands the scoped set to the
// aggregation engine; none of them do their own arithmetic.
func RegisterDashboardRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/admin-stats", middleware.RequireRoles(models.RoleAdmin), getAdminStats)
		dashboard.GET("/hod-stats", middleware.RequireRoles(models.RoleHOD), getHODStats)
		dashboard.GET("/agent-stats", middleware.RequireRoles(models.RoleAgent), getAgentStats)
	}
}

// departmentPerformance is one row of the admin department breakdown
type departmentPerformance struct {
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avg_rating"`
	TotalRatings int     `json:"total_ratings"`
}

// complaintSummary is the trimmed complaint shape on dashboards
type complaintSummary struct {
	ID              uint                    `json:"id"`
	AgentName       string                  `json:"agent_name"`
	CustomerName    string                  `json:"customer_name"`
	FeedbackText    string                  `json:"feedback_text"`
	ComplaintStatus *models.ComplaintStatus `json:"complaint_status"`
	AverageScore    float64                 `json:"average_score"`
	CreatedAt       time.Time               `json:"created_at"`
}

// getAdminStats aggregates across the whole organization
func getAdminStats(c *gin.Context) {
	var totalUsers, pendingApprovals, totalDepartments int64
	database.DB.Model(&models.User{}).Where("status = ?", models.StatusApproved).Count(&totalUsers)
	database.DB.Model(&models.User{}).Where("status = ?", models.StatusPending).Count(&pendingApprovals)
	database.DB.Model(&models.Department{}).Where("is_active = ?", true).Count(&totalDepartments)

	var ratings []models.Rating
	if err := database.DB.Preload("Responses").Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	rollup := services.Rollup(ratings)

	var totalComplaints, openComplaints int64
	database.DB.Model(&models.Rating{}).Where("is_complaint = ?", true).Count(&totalComplaints)
	database.DB.Model(&models.Rating{}).
		Where("is_complaint = ? AND complaint_status = ?", true, models.ComplaintOpen).
		Count(&openComplaints)

	windowDays := config.AppConfig.App.TrendWindow
	trend := services.DailyTrend(ratings, windowDays, time.Now())

	// Department breakdown over active departments
	var departments []models.Department
	if err := database.DB.Preload("Ratings.Responses").
		Where("is_active = ?", true).
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	deptPerformance := make([]departmentPerformance, 0, len(departments))
	for _, dept := range departments {
		deptRollup := services.Rollup(dept.Ratings)
		deptPerformance = append(deptPerformance, departmentPerformance{
			Name:         dept.Name,
			AvgRating:    deptRollup.AverageRating,
			TotalRatings: deptRollup.TotalRatings,
		})
	}
	sortDepartmentPerformance(deptPerformance)

	// Top performers over the trend window
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	var agents []models.User
	if err := database.DB.Preload("Department").
		Preload("Ratings", "created_at >= ?", cutoff).
		Preload("Ratings.Responses").
		Where("role = ? AND status = ?", models.RoleAgent, models.StatusApproved).
		Find(&agents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	withRatings := make([]services.AgentWithRatings, 0, len(agents))
	for i := range agents {
		withRatings = append(withRatings, services.AgentWithRatings{
			Agent:   agents[i],
			Ratings: agents[i].Ratings,
		})
	}
	topPerformers := services.RankTopPerformers(withRatings, config.AppConfig.App.TopPerformers)

	var pendingUsers []models.User
	database.DB.Preload("Department").
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Find(&pendingUsers)
	pendingSummaries := make([]models.UserSummary, 0, len(pendingUsers))
	for i := range pendingUsers {
		pendingSummaries = append(pendingSummaries, pendingUsers[i].Summary())
	}

	var recentActivity []models.Rating
	database.DB.Preload("Agent").Preload("Department").
		Order("created_at DESC").
		Limit(10).
		Find(&recentActivity)

	c.JSON(http.StatusOK, gin.H{
		"total_users":             totalUsers,
		"pending_approvals":       pendingApprovals,
		"total_departments":       totalDepartments,
		"total_ratings":           rollup.TotalRatings,
		"average_rating":          services.Round1(rollup.AverageRating),
		"satisfaction_percentage": rollup.SatisfactionPercentage,
		"total_complaints":        totalComplaints,
		"open_complaints":         openComplaints,
		"trend_data":              trend,
		"department_performance":  deptPerformance,
		"top_performers":          topPerformers,
		"pending_users":           pendingSummaries,
		"recent_activity":         recentActivity,
	})
}

// getHODStats aggregates over the caller's department
func getHODStats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.DepartmentID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No department assigned"})
		return
	}
	departmentID := *user.DepartmentID

	var totalAgents int64
	database.DB.Model(&models.User{}).
		Where("department_id = ? AND role = ? AND status = ?", departmentID, models.RoleAgent, models.StatusApproved).
		Count(&totalAgents)

	var ratings []models.Rating
	if err := database.DB.Preload("Responses").
		Where("department_id = ?", departmentID).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	rollup := services.Rollup(ratings)

	var totalComplaints, openComplaints int64
	database.DB.Model(&models.Rating{}).
		Where("department_id = ? AND is_complaint = ?", departmentID, true).
		Count(&totalComplaints)
	database.DB.Model(&models.Rating{}).
		Where("department_id = ? AND is_complaint = ? AND complaint_status = ?", departmentID, true, models.ComplaintOpen).
		Count(&openComplaints)

	trend := services.DailyTrend(ratings, config.AppConfig.App.TrendWindow, time.Now())

	// Per-agent breakdown keeps zero-rating agents visible, unlike the
	// admin top-performer ranking
	var agents []models.User
	if err := database.DB.
		Preload("Ratings.Responses").
		Where("department_id = ? AND role = ? AND status = ?", departmentID, models.RoleAgent, models.StatusApproved).
		Find(&agents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	agentPerformance := make([]services.AgentPerformance, 0, len(agents))
	for i := range agents {
		agentRollup := services.Rollup(agents[i].Ratings)
		agentPerformance = append(agentPerformance, services.AgentPerformance{
			AgentID:                agents[i].ID,
			Name:                   agents[i].Name,
			TotalRatings:           agentRollup.TotalRatings,
			AverageRating:          agentRollup.AverageRating,
			SatisfactionPercentage: agentRollup.SatisfactionPercentage,
		})
	}
	sortAgentPerformance(agentPerformance)

	var recentComplaints []models.Rating
	database.DB.Preload("Agent").Preload("Responses").
		Where("department_id = ? AND is_complaint = ?", departmentID, true).
		Order("created_at DESC").
		Limit(5).
		Find(&recentComplaints)

	complaintSummaries := make([]complaintSummary, 0, len(recentComplaints))
	for i := range recentComplaints {
		complaint := &recentComplaints[i]
		complaintSummaries = append(complaintSummaries, complaintSummary{
			ID:              complaint.ID,
			AgentName:       complaint.Agent.Name,
			CustomerName:    complaint.CustomerName,
			FeedbackText:    complaint.FeedbackText,
			ComplaintStatus: complaint.ComplaintStatus,
			AverageScore:    services.AverageScore(complaint.Responses),
			CreatedAt:       complaint.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_agents":            totalAgents,
		"total_ratings":           rollup.TotalRatings,
		"average_rating":          services.Round1(rollup.AverageRating),
		"satisfaction_percentage": rollup.SatisfactionPercentage,
		"total_complaints":        totalComplaints,
		"open_complaints":         openComplaints,
		"resolved_complaints":     totalComplaints - openComplaints,
		"trend_data":              trend,
		"agent_performance":       agentPerformance,
		"recent_complaints":       complaintSummaries,
	})
}

// getAgentStats aggregates over the caller's own ratings
func getAgentStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var ratings []models.Rating
	if err := database.DB.Preload("Responses").
		Where("agent_id = ?", user.ID).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	rollup := services.Rollup(ratings)

	var totalComplaints, openComplaints int64
	database.DB.Model(&models.Rating{}).
		Where("agent_id = ? AND is_complaint = ?", user.ID, true).
		Count(&totalComplaints)
	database.DB.Model(&models.Rating{}).
		Where("agent_id = ? AND is_complaint = ? AND complaint_status = ?", user.ID, true, models.ComplaintOpen).
		Count(&openComplaints)

	trend := services.DailyTrend(ratings, config.AppConfig.App.TrendWindow, time.Now())

	var recentRatings []models.Rating
	database.DB.Preload("Responses.Question").
		Where("agent_id = ?", user.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&recentRatings)

	c.JSON(http.StatusOK, gin.H{
		"total_ratings":           rollup.TotalRatings,
		"average_rating":          services.Round1(rollup.AverageRating),
		"satisfaction_percentage": rollup.SatisfactionPercentage,
		"total_complaints":        totalComplaints,
		"open_complaints":         openComplaints,
		"resolved_complaints":     totalComplaints - openComplaints,
		"trend_data":              trend,
		"recent_ratings":          recentRatings,
	})
}

// sortDepartmentPerformance orders departments by average rating, best first
func sortDepartmentPerformance(rows []departmentPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgRating > rows[j].AvgRating
	})
}

// sortAgentPerformance orders agents by average rating, best first
func sortAgentPerformance(rows []services.AgentPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AverageRating > rows[j].AverageRating
	})
}
