package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the persisted form of a parsed candidate record, one row per
// processed document.
type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null" json:"document_id"`
	Name       string    `gorm:"type:text" json:"name"`
	Email      string    `gorm:"type:text" json:"email"`
	Phone      string    `gorm:"type:text" json:"phone"`
	Skills     string    `gorm:"type:text" json:"skills"`
	Education  string    `gorm:"type:text" json:"education"`
	Experience string    `gorm:"type:text" json:"experience"`
	MatchScore *float64  `gorm:"type:decimal(5,2)" json:"match_score,omitempty"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Resume) TableName() string {
	return "resumes"
}
