package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCandidateRecordMarksEverythingAbsent(t *testing.T) {
	record := NewCandidateRecord()

	assert.Equal(t, NotFound, record.Name)
	assert.Equal(t, NotFound, record.Email)
	assert.Equal(t, NotFound, record.Phone)
	assert.Equal(t, NotFound, record.SkillsText())
	assert.Equal(t, NotFound, record.EducationText())
	assert.Equal(t, NotFound, record.ExperienceText())
}

func TestCandidateRecordTextRendering(t *testing.T) {
	record := CandidateRecord{
		Skills:          []string{"docker", "python"},
		Education:       []string{"B.Sc. Computer Science"},
		ExperienceYears: 2.5,
		HasExperience:   true,
	}

	assert.Equal(t, "docker, python", record.SkillsText())
	assert.Equal(t, "B.Sc. Computer Science", record.EducationText())
	assert.Equal(t, "2.5", record.ExperienceText())
}

func TestExperienceTextZeroYearsStillRendered(t *testing.T) {
	// A sub-month position rounds to 0.0 but is still a found value,
	// distinct from the absent marker.
	record := CandidateRecord{HasExperience: true, ExperienceYears: 0}

	assert.Equal(t, "0.0", record.ExperienceText())
}

func TestFormatFromFilename(t *testing.T) {
	cases := []struct {
		filename string
		format   DocumentFormat
		ok       bool
	}{
		{"resume.pdf", FormatPDF, true},
		{"Resume.PDF", FormatPDF, true},
		{"cv.docx", FormatDOCX, true},
		{"notes.txt", FormatTXT, true},
		{"archive.zip", "", false},
		{"noextension", "", false},
	}

	for _, tc := range cases {
		format, ok := FormatFromFilename(tc.filename)
		assert.Equal(t, tc.ok, ok, tc.filename)
		assert.Equal(t, tc.format, format, tc.filename)
	}
}
