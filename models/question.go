package models

import "time"

// Question belongs to one department and is shown to customers while active.
// Inactive questions stay in place so historical responses keep their text.
type Question struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	DepartmentID uint       `json:"department_id" gorm:"not null;index"`
	Department   Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	QuestionText string     `json:"question_text" gorm:"type:text;not null"`
	Order        int        `json:"order" gorm:"column:display_order;not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Question model
func (Question) TableName() string {
	return "questions"
}

// QuestionCreate represents the request structure for creating a question
type QuestionCreate struct {
	QuestionText string `json:"question_text" binding:"required,min=3"`
	IsActive     *bool  `json:"is_active"`
	// ADMIN callers must name the department; HODs always use their own.
	DepartmentID *uint `json:"department_id"`
}

// QuestionUpdate represents the request structure for updating a question
type QuestionUpdate struct {
	QuestionText string `json:"question_text"`
	Order        *int   `json:"order"`
	IsActive     *bool  `json:"is_active"`
}
