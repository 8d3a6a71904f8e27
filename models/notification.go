package models

import "time"

type NotificationType string

const (
	NotificationSystem    NotificationType = "system"
	NotificationRating    NotificationType = "rating"
	NotificationComplaint NotificationType = "complaint"
)

type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	User      User             `json:"-" gorm:"foreignKey:UserID"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null;check:type IN ('system','rating','complaint')"`
	Link      string           `json:"link" gorm:"size:255"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
