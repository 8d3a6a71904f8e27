package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"frontline-rating-server/config"
	"frontline-rating-server/database"
	"frontline-rating-server/email"
	"frontline-rating-server/middleware"
	"frontline-rating-server/models"
	"frontline-rating-server/services"
	"frontline-rating-server/utils"
)

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/register", registerUser)
	router.POST("/login", loginUser)
	router.POST("/refresh", refreshToken)
	router.POST("/forgot-password", forgotPassword)
	router.POST("/reset-password", resetPassword)
	router.GET("/me", middleware.AuthMiddleware(), getCurrentUser)
	router.POST("/change-password", middleware.AuthMiddleware(), changePassword)
}

// registerUser creates a PENDING staff account awaiting admin approval
func registerUser(c *gin.Context) {
	var req models.UserRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	role := models.UserRole(req.Role)

	// HOD and AGENT accounts must belong to a department
	if role != models.RoleAdmin && req.DepartmentID == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Department required",
			"message": "Department is required for this role",
		})
		return
	}

	var departmentID *uint
	if role != models.RoleAdmin {
		var department models.Department
		if err := database.DB.First(&department, *req.DepartmentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department"})
			return
		}
		departmentID = &department.ID
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Email already registered",
			"message": "An account with this email already exists",
		})
		return
	}

	var employeeID *string
	if req.EmployeeID != "" {
		if err := database.DB.Where("employee_id = ?", req.EmployeeID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Employee ID already in use",
				"message": "An account with this employee ID already exists",
			})
			return
		}
		employeeID = &req.EmployeeID
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Password hashing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		EmployeeID:   employeeID,
		Role:         role,
		Status:       models.StatusPending,
		DepartmentID: departmentID,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ User creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	if err := services.Notify(user.ID, "Registration Received",
		"Your registration is awaiting admin approval.", models.NotificationSystem, ""); err != nil {
		log.Printf("❌ Failed to create registration notification: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Awaiting admin approval.",
		"user":    user.Summary(),
	})
}

// loginUser authenticates an APPROVED user and issues a token pair
func loginUser(c *gin.Context) {
	var req models.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	var user models.User
	err := database.DB.Preload("Department").
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !user.IsApproved() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Account not approved",
			"message": "Your account is pending approval or has been rejected",
		})
		return
	}

	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Printf("❌ Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Printf("❌ Refresh token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"access_token":  accessToken,
		"refresh_token": refresh,
		"user":          user.Summary(),
	})
}

// refreshToken exchanges a valid refresh token for a new access token
func refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	claims, err := utils.VerifyToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "message": "Refresh token is invalid or expired"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsApproved() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "message": "Account is no longer active"})
		return
	}

	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// forgotPassword issues a reset token and emails it, best-effort. The
// response never reveals whether the email exists.
func forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	response := gin.H{"message": "If an account exists for that email, a reset link has been sent."}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("❌ Forgot-password lookup failed: %v", err)
		}
		c.JSON(http.StatusOK, response)
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)
	updates := map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("❌ Failed to store reset token: %v", err)
		c.JSON(http.StatusOK, response)
		return
	}

	resetLink := config.AppConfig.App.BaseURL + "/auth/reset-password?token=" + token
	if err := email.SendPasswordReset(user.Email, user.Name, resetLink); err != nil {
		log.Printf("⚠️ Failed to send reset email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, response)
}

// resetPassword sets a new password for a valid, unexpired reset token
func resetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	updates := map[string]interface{}{
		"password_hash":      hashedPassword,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("❌ Failed to reset password for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset. You can now log in."})
}

// getCurrentUser returns the authenticated user's profile
func getCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user.Summary()})
}

// changePassword updates the authenticated user's password
func changePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password_hash", hashedPassword).Error; err != nil {
		log.Printf("❌ Failed to change password for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
