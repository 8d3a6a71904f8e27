package routes

import (
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

// RegisterUserRoutes registers ADMIN-only user administration
func RegisterUserRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		users.GET("", listUsers)
		users.PUT("/:id/approve", approveUser)
		users.PUT("/:id/reject", rejectUser)
		users.PUT("/:id/reactivate", reactivateUser)
		users.DELETE("/:id", deleteUser)
	}
}

// listUsers returns users, filterable by status, role and department
func listUsers(c *gin.Context) {
	query := database.DB.Model(&models.User{}).Preload("Department")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if departmentID := c.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var total int64
	query.Count(&total)

	page, limit, offset := pagination(c, 20)

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": paginationMeta(page, limit, total),
	})
}

func loadUser(c *gin.Context) (*models.User, bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return nil, false
	}

	var user models.User
	if err := database.DB.Preload("Department").First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return nil, false
	}

	return &user, true
}

// setUserStatus transitions a user to the given status and notifies them
func setUserStatus(c *gin.Context, status models.UserStatus, verb string) {
	user, ok := loadUser(c)
	if !ok {
		return
	}

	if user.Status == status {
		c.JSON(http.StatusOK, gin.H{"message": "User already " + verb, "user": user.Summary()})
		return
	}

	if err := database.DB.Model(user).Update("status", status).Error; err != nil {
		log.Printf("❌ Failed to update status for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	user.Status = status

	approved := status == models.StatusApproved
	title := "Account approved"
	message := "Your account has been approved. You can now sign in."
	ntype := models.NotificationSystem
	if !approved {
		title = "Account " + verb
		message = "Your account has been " + verb + ". Contact an administrator for details."
	}
	services.Notify(user.ID, title, message, ntype, "")

	// best effort, never blocks the response
	go func(u models.User) {
		if err := email.SendApprovalNotification(u.Email, u.Name, approved); err != nil {
			log.Printf("⚠️ Failed to send status email to %s: %v", u.Email, err)
		}
	}(*user)

	log.Printf("✅ User %d (%s) %s", user.ID, user.Email, verb)
	c.JSON(http.StatusOK, gin.H{"message": "User " + verb, "user": user.Summary()})
}

func approveUser(c *gin.Context) {
	setUserStatus(c, models.StatusApproved, "approved")
}

func rejectUser(c *gin.Context) {
	setUserStatus(c, models.StatusRejected, "rejected")
}

// reactivateUser moves a rejected user back to the approval queue
func reactivateUser(c *gin.Context) {
	user, ok := loadUser(c)
	if !ok {
		return
	}

	if user.Status != models.StatusRejected {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid transition",
			"message": "Only rejected users can be reactivated",
		})
		return
	}

	if err := database.DB.Model(user).Update("status", models.StatusPending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	user.Status = models.StatusPending

	c.JSON(http.StatusOK, gin.H{"message": "User moved back to pending approval", "user": user.Summary()})
}

// deleteUser permanently removes a user account. Ratings and notifications
// the user owns cascade through the store's foreign keys.
func deleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	user, ok := loadUser(c)
	if !ok {
		return
	}

	if user.ID == actor.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "You cannot delete your own account"})
		return
	}

	if err := database.DB.Delete(user).Error; err != nil {
		log.Printf("❌ Failed to delete user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	log.Printf("🗑️ User %d (%s) deleted by admin %d", user.ID, user.Email, actor.ID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
