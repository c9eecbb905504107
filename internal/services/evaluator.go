package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"hirelens/resume-parser/internal/models"
	"hirelens/resume-parser/internal/repositories"
)

// EvaluatorService is the pipeline orchestrator: normalize, extract, score,
// persist. Normalization failures abort the whole request; individual
// recognizer failures degrade to "Not found" inside the extractor.
type EvaluatorService interface {
	// Parse runs the core pipeline over raw document bytes. MatchScore is
	// nil when no job description was supplied.
	Parse(data []byte, format models.DocumentFormat, jobDescription string) (*ParseResult, error)
	// ProcessJob loads a queued parse job, runs Parse over its stored
	// document and persists the outcome.
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
}

type ParseResult struct {
	Record     models.CandidateRecord
	MatchScore *float64
}

type evaluatorService struct {
	jobRepo        repositories.ParseJobRepository
	docRepo        repositories.DocumentRepository
	resumeRepo     repositories.ResumeRepository
	storageService StorageService
	normalizer     NormalizerService
	extractor      ExtractorService
	matcher        MatcherService
}

func NewEvaluatorService(
	jobRepo repositories.ParseJobRepository,
	docRepo repositories.DocumentRepository,
	resumeRepo repositories.ResumeRepository,
	storageService StorageService,
	normalizer NormalizerService,
	extractor ExtractorService,
	matcher MatcherService,
) EvaluatorService {
	return &evaluatorService{
		jobRepo:        jobRepo,
		docRepo:        docRepo,
		resumeRepo:     resumeRepo,
		storageService: storageService,
		normalizer:     normalizer,
		extractor:      extractor,
		matcher:        matcher,
	}
}

// Parse implements EvaluatorService.
func (e *evaluatorService) Parse(data []byte, format models.DocumentFormat, jobDescription string) (*ParseResult, error) {
	text, err := e.normalizer.Normalize(data, format)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Record: e.extractor.Extract(text),
	}

	if jobDescription != "" {
		score := e.matcher.MatchScore(text, jobDescription)
		result.MatchScore = &score
	}

	return result, nil
}

// ProcessJob implements EvaluatorService.
func (e *evaluatorService) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	// The claim is a compare-and-swap on the queued status. A job delivered
	// twice (handler enqueue plus a poller tick) is processed once; the
	// second delivery is a no-op.
	if err := e.jobRepo.ClaimQueued(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotQueued) {
			log.Printf("📋 Job %s already claimed, skipping\n", jobID)
			return nil
		}
		return fmt.Errorf("failed to claim parse job: %w", err)
	}

	log.Printf("🔄 Starting parse for job ID: %s\n", jobID)

	job, err := e.jobRepo.FindByID(jobID)
	if err != nil {
		e.jobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to get parse job: %w", err)
	}

	doc, err := e.docRepo.FindByID(job.DocumentID)
	if err != nil {
		e.jobRepo.UpdateError(jobID, fmt.Sprintf("Document not found: %v", err))
		return fmt.Errorf("failed to get document: %w", err)
	}

	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		e.jobRepo.UpdateError(jobID, fmt.Sprintf("Failed to read document file: %v", err))
		return fmt.Errorf("failed to read document file: %w", err)
	}

	log.Printf("📄 Parsing resume %s (%s)...\n", doc.OriginalFileName, doc.Format)
	result, err := e.Parse(data, models.DocumentFormat(doc.Format), job.JobDescription)
	if err != nil {
		e.jobRepo.UpdateError(jobID, fmt.Sprintf("Failed to parse resume: %v", err))
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	log.Println("💾 Saving parsed resume...")
	resume := &models.Resume{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Name:       result.Record.Name,
		Email:      result.Record.Email,
		Phone:      result.Record.Phone,
		Skills:     result.Record.SkillsText(),
		Education:  result.Record.EducationText(),
		Experience: result.Record.ExperienceText(),
		MatchScore: result.MatchScore,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := e.resumeRepo.Create(resume); err != nil {
		e.jobRepo.UpdateError(jobID, fmt.Sprintf("Failed to save resume: %v", err))
		return fmt.Errorf("failed to save resume: %w", err)
	}

	if err := e.jobRepo.UpdateResult(jobID, resume.ID, result.MatchScore); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	// The upload has been consumed; only the parsed record is kept.
	if err := e.storageService.DeleteFile(doc.Filename); err != nil {
		log.Printf("⚠️  Failed to remove uploaded file %s: %v\n", doc.Filename, err)
	}

	log.Printf("✅ Parse completed successfully for job ID: %s\n", jobID)
	return nil
}
