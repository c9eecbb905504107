package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hirelens/resume-parser/internal/repositories"
)

type ResumesHandler struct {
	resumeRepo repositories.ResumeRepository
}

func NewResumesHandler(resumeRepo repositories.ResumeRepository) *ResumesHandler {
	return &ResumesHandler{
		resumeRepo: resumeRepo,
	}
}

// HandleListResumes handles GET /resumes
func (h *ResumesHandler) HandleListResumes(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	return c.JSON(fiber.Map{
		"count":   len(resumes),
		"resumes": resumes,
	})
}
