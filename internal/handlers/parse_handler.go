package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/resume-parser/internal/models"
	"hirelens/resume-parser/internal/repositories"
	"hirelens/resume-parser/internal/services"
)

type ParseHandler struct {
	jobRepo repositories.ParseJobRepository
	docRepo repositories.DocumentRepository
	worker  services.Worker
}

func NewParseHandler(
	jobRepo repositories.ParseJobRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *ParseHandler {
	return &ParseHandler{
		jobRepo: jobRepo,
		docRepo: docRepo,
		worker:  worker,
	}
}

// HandleParse handles POST /parse
func (h *ParseHandler) HandleParse(c *fiber.Ctx) error {
	var req models.ParseRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_id is required",
		})
	}

	// Parse UUID
	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document_id format",
		})
	}

	// Verify document exists
	if _, err := h.docRepo.FindByID(docID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	// Create parse job record. The job description is optional; without it
	// the job yields a candidate record and a null match score.
	job := &models.ParseJob{
		ID:             uuid.New(),
		DocumentID:     docID,
		JobDescription: req.JobDescription,
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create parse job",
		})
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(job.ID)

	// Return job ID immediately
	return c.Status(fiber.StatusAccepted).JSON(models.ParseResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}
