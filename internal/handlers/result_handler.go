package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/resume-parser/internal/models"
	"hirelens/resume-parser/internal/repositories"
)

type ResultHandler struct {
	jobRepo    repositories.ParseJobRepository
	resumeRepo repositories.ResumeRepository
}

func NewResultHandler(
	jobRepo repositories.ParseJobRepository,
	resumeRepo repositories.ResumeRepository,
) *ResultHandler {
	return &ResultHandler{
		jobRepo:    jobRepo,
		resumeRepo: resumeRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	// Parse ID from params
	idParam := c.Params("id")
	jobID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid parse job ID format",
		})
	}

	// Get parse job
	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Parse job not found",
		})
	}

	// Build response based on status
	response := models.ResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	// If completed, include the parsed record
	if job.Status == models.StatusCompleted && job.ResumeID != nil {
		resume, err := h.resumeRepo.FindByID(*job.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Parsed resume record missing",
			})
		}

		response.Result = &models.ResumeData{
			Name:       resume.Name,
			Email:      resume.Email,
			Phone:      resume.Phone,
			Skills:     resume.Skills,
			Education:  resume.Education,
			Experience: resume.Experience,
			MatchScore: resume.MatchScore,
		}
	}

	// If failed, include error message
	if job.Status == models.StatusFailed && job.ErrorMessage != nil {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
