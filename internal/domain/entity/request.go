package entity

import (
	"time"

	"avenqor/internal/domain/value"
)

type RequestKind string

const (
	RequestKindCustomCourse RequestKind = "custom_course"
	RequestKindAIStrategy   RequestKind = "ai_strategy"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusInReview  RequestStatus = "in_review"
	RequestStatusCompleted RequestStatus = "completed"
)

// ServiceRequest is a paid custom-course or AI-strategy order. The token
// price is computed server side from the stored selection and frozen here.
type ServiceRequest struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Kind      RequestKind   `json:"kind"`
	Status    RequestStatus `json:"status"`
	Tokens    int64         `json:"tokens"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Exactly one of these is set, matching Kind.
	CourseSelection   *value.CourseSelection   `json:"course_selection,omitempty"`
	StrategySelection *value.StrategySelection `json:"strategy_selection,omitempty"`
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
