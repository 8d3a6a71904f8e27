package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleHOD   UserRole = "HOD"
	RoleAgent UserRole = "AGENT"
)

type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusApproved UserStatus = "APPROVED"
	StatusRejected UserStatus = "REJECTED"
)

type User struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"size:255;not null"`
	Email        string      `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"`
	Phone        string      `json:"phone" gorm:"size:30"`
	EmployeeID   *string     `json:"employee_id" gorm:"size:50;uniqueIndex"`
	Role         UserRole    `json:"role" gorm:"type:varchar(10);not null;check:role IN ('ADMIN','HOD','AGENT')"`
	Status       UserStatus  `json:"status" gorm:"type:varchar(10);not null;default:'PENDING';check:status IN ('PENDING','APPROVED','REJECTED')"`
	DepartmentID *uint       `json:"department_id"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`

	// Password reset flow
	ResetToken       *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Ratings       []Rating       `json:"ratings,omitempty" gorm:"foreignKey:AgentID;constraint:OnDelete:CASCADE"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHOD checks if the user is a head of department
func (u *User) IsHOD() bool {
	return u.Role == RoleHOD
}

// IsAgent checks if the user is a frontline agent
func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}

// IsApproved checks if the account has been approved by an admin
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// UserRegister represents the request structure for staff registration
type UserRegister struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=128"`
	Phone        string `json:"phone"`
	EmployeeID   string `json:"employee_id"`
	Role         string `json:"role" binding:"required,oneof=ADMIN HOD AGENT"`
	DepartmentID *uint  `json:"department_id"`
}

// UserLogin represents the request structure for login
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the trimmed user shape returned in listings and dashboards
type UserSummary struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	EmployeeID     *string    `json:"employee_id,omitempty"`
	Role           UserRole   `json:"role"`
	Status         UserStatus `json:"status"`
	DepartmentID   *uint      `json:"department_id,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Summary converts a User into its listing shape
func (u *User) Summary() UserSummary {
	s := UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		EmployeeID:   u.EmployeeID,
		Role:         u.Role,
		Status:       u.Status,
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt,
	}
	if u.Department != nil {
		s.DepartmentName = u.Department.Name
	}
	return s
}
