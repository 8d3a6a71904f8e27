package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
)

// RegisterNotificationRoutes registers the per-user notification feed
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", listNotifications)
		notifications.GET("/unread-count", unreadCount)
		notifications.PUT("/:id/read", markNotificationRead)
		notifications.PUT("/read-all", markAllNotificationsRead)
	}
}

// listNotifications returns the caller's notifications, newest first
func listNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := database.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	page, limit, offset := pagination(c, 20)

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    paginationMeta(page, limit, total),
	})
}

func unreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// markNotificationRead marks one of the caller's notifications as read
func markNotificationRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func markAllNotificationsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": result.RowsAffected})
}
