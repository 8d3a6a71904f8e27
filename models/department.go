package models

import "time"

type Department struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Users     []User     `json:"users,omitempty" gorm:"foreignKey:DepartmentID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:DepartmentID"`
	Ratings   []Rating   `json:"ratings,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName specifies the table name for the Department model
func (Department) TableName() string {
	return "departments"
}

// DepartmentCreate represents the request structure for creating a department
type DepartmentCreate struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// DepartmentUpdate represents the request structure for updating a department
type DepartmentUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}
