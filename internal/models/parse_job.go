package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// ParseJob is one queued extraction-and-scoring request for an uploaded
// document, optionally against a job description.
type ParseJob struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID     uuid.UUID  `gorm:"type:uuid;not null" json:"document_id"`
	JobDescription string     `gorm:"type:text" json:"job_description"`
	Status         JobStatus  `gorm:"not null;default:'queued'" json:"status"`
	ResumeID       *uuid.UUID `gorm:"type:uuid" json:"resume_id,omitempty"`
	MatchScore     *float64   `gorm:"type:decimal(5,2)" json:"match_score,omitempty"`
	ErrorMessage   *string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (ParseJob) TableName() string {
	return "parse_jobs"
}
