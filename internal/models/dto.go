package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Format       string `json:"format"`
}

type ParseRequest struct {
	DocumentID     string `json:"document_id" validate:"required,uuid"`
	JobDescription string `json:"job_description"`
}

type ParseResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	Result       *ResumeData `json:"result,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
}

// ResumeData is the candidate record as returned to API clients, with the
// match score null when no job description was supplied.
type ResumeData struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     string   `json:"skills"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	MatchScore *float64 `json:"match_score"`
}
