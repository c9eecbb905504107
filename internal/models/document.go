package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentFormat is the declared format of an uploaded resume.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
)

// FormatFromFilename maps a file extension to a supported document format.
func FormatFromFilename(filename string) (DocumentFormat, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".txt":
		return FormatTXT, true
	default:
		return "", false
	}
}

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	Format           string    `gorm:"type:text" json:"format"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
