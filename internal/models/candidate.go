package models

import (
	"fmt"
	"strings"
)

// NotFound is the explicit marker stored for any field a recognizer could not
// locate in the resume text. Fields are never silently omitted.
const NotFound = "Not found"

// CandidateRecord is the structured output of the field extractor. Each
// recognizer owns exactly one field.
type CandidateRecord struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	ExperienceYears float64  `json:"experience_years"`
	HasExperience   bool     `json:"has_experience"`
}

// NewCandidateRecord returns a record with every field marked as absent.
func NewCandidateRecord() CandidateRecord {
	return CandidateRecord{
		Name:  NotFound,
		Email: NotFound,
		Phone: NotFound,
	}
}

// SkillsText renders the skill set the way the record store keeps it.
func (r CandidateRecord) SkillsText() string {
	return joinOrNotFound(r.Skills)
}

// EducationText renders the education lines the way the record store keeps it.
func (r CandidateRecord) EducationText() string {
	return joinOrNotFound(r.Education)
}

// ExperienceText renders total experience in years, or the absent marker.
func (r CandidateRecord) ExperienceText() string {
	if !r.HasExperience {
		return NotFound
	}
	return fmt.Sprintf("%.1f", r.ExperienceYears)
}

func joinOrNotFound(values []string) string {
	if len(values) == 0 {
		return NotFound
	}
	return strings.Join(values, ", ")
}
