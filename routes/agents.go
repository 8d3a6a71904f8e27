package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontline-rating-server/database"
	"frontline-rating-server/models"
)

// RegisterAgentRoutes registers the public agent lookup routes used by the
// customer-facing rating flow
func RegisterAgentRoutes(router *gin.RouterGroup) {
	agents := router.Group("/agents")
	{
		agents.GET("/search", searchAgents)
		agents.GET("/:agentId", getAgent)
		agents.GET("/:agentId/questions", getAgentQuestions)
	}
}

// searchAgents finds approved agents by name. An empty query returns an
// empty list rather than every agent.
func searchAgents(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	var agents []models.User
	err := database.DB.Preload("Department").
		Where("role = ? AND status = ? AND name ILIKE ?", models.RoleAgent, models.StatusApproved, "%"+query+"%").
		Order("name ASC").
		Limit(50).
		Find(&agents).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search agents"})
		return
	}

	results := make([]models.UserSummary, 0, len(agents))
	for i := range agents {
		results = append(results, agents[i].Summary())
	}

	c.JSON(http.StatusOK, results)
}

// loadApprovedAgent fetches an approved agent by path parameter
func loadApprovedAgent(c *gin.Context) (*models.User, bool) {
	agentID, err := strconv.ParseUint(c.Param("agentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return nil, false
	}

	var agent models.User
	err = database.DB.Preload("Department").
		Where("id = ? AND role = ? AND status = ?", agentID, models.RoleAgent, models.StatusApproved).
		First(&agent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch agent"})
		}
		return nil, false
	}

	return &agent, true
}

// getAgent returns one approved agent's public profile
func getAgent(c *gin.Context) {
	agent, ok := loadApprovedAgent(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, agent.Summary())
}

// getAgentQuestions returns the active questions of the agent's department
// in display order, which is exactly what the customer rating form renders
func getAgentQuestions(c *gin.Context) {
	agent, ok := loadApprovedAgent(c)
	if !ok {
		return
	}

	if agent.DepartmentID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	var questions []models.Question
	err := database.DB.
		Where("department_id = ? AND is_active = ?", *agent.DepartmentID, true).
		Order("display_order ASC").
		Find(&questions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, questions)
}
