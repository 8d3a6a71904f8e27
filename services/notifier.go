package services

import (
	"log"
	"time"

	"frontline-rating-server/database"
	"frontline-rating-server/models"
	ws "frontline-rating-server/websocket"
)

// notificationHub is the live push channel. It is optional: when no hub is
// wired (tests, one-off tools) notifications are only persisted.
var notificationHub *ws.Hub

// SetNotificationHub wires the websocket hub used for live pushes
func SetNotificationHub(hub *ws.Hub) {
	notificationHub = hub
}

// Notify persists a notification for the user and pushes it to any open
// websocket connection. Persistence failures are returned; push failures are
// not, delivery is best-effort.
func Notify(userID uint, title, message string, ntype models.NotificationType, link string) error {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
		Link:    link,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		return err
	}

	if notificationHub != nil {
		notificationHub.Push(userID, &ws.Message{
			Type:      "notification",
			Data:      notification,
			Timestamp: time.Now().UTC(),
		})
	}

	return nil
}

// NotifyDepartmentHODs notifies every approved HOD of a department. Individual
// failures are logged and skipped so one bad row cannot block the rest.
func NotifyDepartmentHODs(departmentID uint, title, message string, ntype models.NotificationType, link string) {
	var hods []models.User
	if err := database.DB.
		Where("department_id = ? AND role = ? AND status = ?", departmentID, models.RoleHOD, models.StatusApproved).
		Find(&hods).Error; err != nil {
		log.Printf("❌ Failed to load HODs for department %d: %v", departmentID, err)
		return
	}

	for _, hod := range hods {
		if err := Notify(hod.ID, title, message, ntype, link); err != nil {
			log.Printf("❌ Failed to notify HOD %d: %v", hod.ID, err)
		}
	}
}
