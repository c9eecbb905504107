package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-parser/internal/models"
	"hirelens/resume-parser/internal/repositories"
)

func newTestEvaluator() EvaluatorService {
	return NewEvaluatorService(
		nil, nil, nil, nil,
		NewNormalizerService(),
		NewExtractorService(DefaultSkillsLexicon(), nil),
		NewMatcherService(),
	)
}

func TestParseWithJobDescription(t *testing.T) {
	evaluator := newTestEvaluator()

	result, err := evaluator.Parse([]byte(sampleResume), models.FormatTXT,
		"Looking for a data scientist with Python and machine learning experience")

	require.NoError(t, err)
	assert.Equal(t, "John Smith", result.Record.Name)
	assert.Equal(t, "john.smith@example.com", result.Record.Email)

	require.NotNil(t, result.MatchScore)
	assert.Greater(t, *result.MatchScore, 0.0)
	assert.LessOrEqual(t, *result.MatchScore, 100.0)
}

func TestParseWithoutJobDescription(t *testing.T) {
	evaluator := newTestEvaluator()

	result, err := evaluator.Parse([]byte(sampleResume), models.FormatTXT, "")

	require.NoError(t, err)
	assert.Equal(t, "John Smith", result.Record.Name)
	assert.Nil(t, result.MatchScore, "no job description means no score, not a zero score")
}

func TestParseCorruptDocument(t *testing.T) {
	evaluator := newTestEvaluator()

	result, err := evaluator.Parse([]byte("not a pdf"), models.FormatPDF, "any job")

	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.Nil(t, result, "a failed normalization must not yield a partial record")
}

func TestParseUnsupportedFormat(t *testing.T) {
	evaluator := newTestEvaluator()

	result, err := evaluator.Parse([]byte("content"), models.DocumentFormat("odt"), "")

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, result)
}

func TestParseSparseResumeStillSucceeds(t *testing.T) {
	evaluator := newTestEvaluator()

	result, err := evaluator.Parse([]byte("just some plain notes"), models.FormatTXT, "")

	require.NoError(t, err)
	assert.Equal(t, models.NotFound, result.Record.Name)
	assert.Equal(t, models.NotFound, result.Record.Email)
	assert.Equal(t, models.NotFound, result.Record.Phone)
	assert.False(t, result.Record.HasExperience)
}

type stubJobRepo struct {
	job        *models.ParseJob
	claimCalls int
	findCalls  int
	lastScore  *float64
	lastError  *string
}

func (s *stubJobRepo) Create(job *models.ParseJob) error { s.job = job; return nil }

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.ParseJob, error) {
	s.findCalls++
	if s.job == nil || s.job.ID != id {
		return nil, fmt.Errorf("parse job not found")
	}
	return s.job, nil
}

func (s *stubJobRepo) ClaimQueued(id uuid.UUID) error {
	s.claimCalls++
	if s.job == nil || s.job.ID != id || s.job.Status != models.StatusQueued {
		return repositories.ErrJobNotQueued
	}
	s.job.Status = models.StatusProcessing
	return nil
}

func (s *stubJobRepo) UpdateResult(id uuid.UUID, resumeID uuid.UUID, matchScore *float64) error {
	s.job.Status = models.StatusCompleted
	s.job.ResumeID = &resumeID
	s.lastScore = matchScore
	return nil
}

func (s *stubJobRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	s.job.Status = models.StatusFailed
	s.lastError = &errorMsg
	return nil
}

func (s *stubJobRepo) FindPendingJobs(limit int) ([]models.ParseJob, error) { return nil, nil }

type stubDocRepo struct {
	doc *models.Document
}

func (s *stubDocRepo) Create(doc *models.Document) error { s.doc = doc; return nil }

func (s *stubDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	if s.doc == nil || s.doc.ID != id {
		return nil, fmt.Errorf("document not found")
	}
	return s.doc, nil
}

type stubResumeRepo struct {
	created []*models.Resume
}

func (s *stubResumeRepo) Create(resume *models.Resume) error {
	s.created = append(s.created, resume)
	return nil
}

func (s *stubResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	for _, resume := range s.created {
		if resume.ID == id {
			return resume, nil
		}
	}
	return nil, fmt.Errorf("resume not found")
}

func (s *stubResumeRepo) FindAll() ([]models.Resume, error) { return nil, nil }

func TestProcessJobPersistsRecordAndRemovesUpload(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "txt_upload.txt")
	require.NoError(t, os.WriteFile(filePath, []byte(sampleResume), 0o644))

	docID, jobID := uuid.New(), uuid.New()
	docs := &stubDocRepo{doc: &models.Document{
		ID:       docID,
		Filename: "txt_upload.txt",
		Format:   string(models.FormatTXT),
		FilePath: filePath,
	}}
	jobs := &stubJobRepo{job: &models.ParseJob{
		ID:             jobID,
		DocumentID:     docID,
		JobDescription: "data scientist with python and machine learning",
		Status:         models.StatusQueued,
	}}
	resumes := &stubResumeRepo{}

	evaluator := NewEvaluatorService(
		jobs, docs, resumes, NewStorageService(dir),
		NewNormalizerService(),
		NewExtractorService(DefaultSkillsLexicon(), nil),
		NewMatcherService(),
	)

	require.NoError(t, evaluator.ProcessJob(context.Background(), jobID))

	require.Len(t, resumes.created, 1)
	assert.Equal(t, "John Smith", resumes.created[0].Name)
	assert.Equal(t, models.StatusCompleted, jobs.job.Status)
	require.NotNil(t, jobs.lastScore)
	assert.Greater(t, *jobs.lastScore, 0.0)

	_, err := os.Stat(filePath)
	assert.True(t, os.IsNotExist(err), "upload removed after a successful parse")
}

func TestProcessJobDuplicateDeliveryIsNoOp(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "txt_upload.txt")
	require.NoError(t, os.WriteFile(filePath, []byte(sampleResume), 0o644))

	docID, jobID := uuid.New(), uuid.New()
	docs := &stubDocRepo{doc: &models.Document{
		ID:       docID,
		Filename: "txt_upload.txt",
		Format:   string(models.FormatTXT),
		FilePath: filePath,
	}}
	jobs := &stubJobRepo{job: &models.ParseJob{
		ID:         jobID,
		DocumentID: docID,
		Status:     models.StatusQueued,
	}}
	resumes := &stubResumeRepo{}

	evaluator := NewEvaluatorService(
		jobs, docs, resumes, NewStorageService(dir),
		NewNormalizerService(),
		NewExtractorService(DefaultSkillsLexicon(), nil),
		NewMatcherService(),
	)

	// The same job arrives twice: once from the handler enqueue, once from
	// the pending-jobs poller. Only the first delivery may produce a row.
	require.NoError(t, evaluator.ProcessJob(context.Background(), jobID))
	require.NoError(t, evaluator.ProcessJob(context.Background(), jobID))

	assert.Equal(t, 2, jobs.claimCalls)
	assert.Equal(t, 1, jobs.findCalls, "second delivery stops at the claim")
	assert.Len(t, resumes.created, 1)
	assert.Equal(t, models.StatusCompleted, jobs.job.Status)
	assert.Nil(t, jobs.lastError)
}
