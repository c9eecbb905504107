package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirelens/resume-parser/internal/models"
)

// ErrJobNotQueued means the job is not in the queued state: it does not
// exist, or another worker already claimed it.
var ErrJobNotQueued = errors.New("parse job is not queued")

type ParseJobRepository interface {
	Create(job *models.ParseJob) error
	FindByID(id uuid.UUID) (*models.ParseJob, error)
	ClaimQueued(id uuid.UUID) error
	UpdateResult(id uuid.UUID, resumeID uuid.UUID, matchScore *float64) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.ParseJob, error)
}

type parseJobRepository struct {
	db *gorm.DB
}

func NewParseJobRepository(db *gorm.DB) ParseJobRepository {
	return &parseJobRepository{db: db}
}

func (r *parseJobRepository) Create(job *models.ParseJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create parse job: %w", err)
	}
	return nil
}

func (r *parseJobRepository) FindByID(id uuid.UUID) (*models.ParseJob, error) {
	var job models.ParseJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("parse job not found")
		}
		return nil, fmt.Errorf("failed to find parse job: %w", err)
	}
	return &job, nil
}

// ClaimQueued transitions a job from queued to processing. The status filter
// makes the claim a compare-and-swap: a job enqueued twice (handler push plus
// a poller tick) is claimed by exactly one worker.
func (r *parseJobRepository) ClaimQueued(id uuid.UUID) error {
	result := r.db.Model(&models.ParseJob{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to claim parse job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotQueued
	}

	return nil
}

func (r *parseJobRepository) UpdateResult(id uuid.UUID, resumeID uuid.UUID, matchScore *float64) error {
	updates := map[string]interface{}{
		"status":     models.StatusCompleted,
		"resume_id":  resumeID,
		"updated_at": time.Now(),
	}

	if matchScore != nil {
		updates["match_score"] = *matchScore
	}

	result := r.db.Model(&models.ParseJob{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("parse job not found")
	}

	return nil
}

func (r *parseJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ParseJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("parse job not found")
	}

	return nil
}

func (r *parseJobRepository) FindPendingJobs(limit int) ([]models.ParseJob, error) {
	var jobs []models.ParseJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}
