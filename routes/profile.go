package routes

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"frontline-rating-server/config"
	"frontline-rating-server/database"
	"frontline-rating-server/middleware"
)

// RegisterProfileRoutes registers the caller's own profile endpoints
func RegisterProfileRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", getProfile)
		profile.PUT("", updateProfile)
		profile.GET("/qrcode", getProfileQRCode)
	}
}

func getProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user)
}

type profileUpdate struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

// updateProfile lets a user change their own name and phone. Email, role
// and department changes go through an admin.
func updateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req profileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := database.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("❌ Failed to update profile for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// getProfileQRCode returns a PNG code pointing customers at the caller's
// public rating page
func getProfileQRCode(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ratingURL := fmt.Sprintf("%s/rate/%d", config.AppConfig.App.BaseURL, user.ID)
	png, err := qrcode.Encode(ratingURL, qrcode.Medium, 512)
	if err != nil {
		log.Printf("❌ Failed to encode QR code for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="rating-qr-%d.png"`, user.ID))
	c.Data(http.StatusOK, "image/png", png)
}
