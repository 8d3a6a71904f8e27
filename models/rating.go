package models

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "OPEN"
	ComplaintResolved ComplaintStatus = "RESOLVED"
)

// Rating is one customer's feedback event for one agent. The department is
// denormalized from the agent at submission time so department dashboards
// never need a join through users. A rating is immutable except for the
// complaint status transition.
type Rating struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	AgentID      uint       `json:"agent_id" gorm:"not null;index"`
	Agent        User       `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	DepartmentID uint       `json:"department_id" gorm:"not null;index"`
	Department   Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`

	CustomerName    string `json:"customer_name" gorm:"size:255"`
	CustomerContact string `json:"customer_contact" gorm:"size:255;index"`
	PolicyNumber    string `json:"policy_number" gorm:"size:100"`
	IsAnonymous     bool   `json:"is_anonymous" gorm:"default:false"`
	IsComplaint     bool   `json:"is_complaint" gorm:"default:false;index"`
	FeedbackText    string `json:"feedback_text" gorm:"type:text"`

	ComplaintStatus *ComplaintStatus `json:"complaint_status,omitempty" gorm:"type:varchar(10);check:complaint_status IN ('OPEN','RESOLVED')"`
	ResolvedAt      *time.Time       `json:"resolved_at,omitempty"`
	ResolvedBy      *uint            `json:"resolved_by,omitempty"`

	IPAddress string    `json:"ip_address" gorm:"size:64"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:RatingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

// IsOpenComplaint reports whether the rating is a complaint still awaiting resolution
func (r *Rating) IsOpenComplaint() bool {
	return r.IsComplaint && r.ComplaintStatus != nil && *r.ComplaintStatus == ComplaintOpen
}

// Response is a single question score within a rating, constrained to 1..5.
type Response struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	RatingID   uint     `json:"rating_id" gorm:"not null;index"`
	QuestionID uint     `json:"question_id" gorm:"not null;index"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Score      int      `json:"score" gorm:"type:int;not null;check:score >= 1 AND score <= 5"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Response model
func (Response) TableName() string {
	return "responses"
}

// ResponseInput is one (question, score) pair in a rating submission
type ResponseInput struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Score      int  `json:"score" binding:"required,min=1,max=5"`
}

// RatingCreate represents the request structure for submitting a rating
type RatingCreate struct {
	AgentID         uint            `json:"agent_id" binding:"required"`
	CustomerName    string          `json:"customer_name"`
	CustomerContact string          `json:"customer_contact"`
	PolicyNumber    string          `json:"policy_number"`
	IsAnonymous     bool            `json:"is_anonymous"`
	IsComplaint     bool            `json:"is_complaint"`
	FeedbackText    string          `json:"feedback_text"`
	Responses       []ResponseInput `json:"responses" binding:"required,min=1,dive"`
}
