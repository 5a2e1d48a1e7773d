package jobs

import (
	"log/slog"
	"sort"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for jobs.
type Handler struct {
	service *Service
}

// NewHandler creates a new jobs handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type jobView struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Status    JobStatus      `json:"status"`
	Progress  int            `json:"progress"`
	Message   string         `json:"message"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func viewOf(job *Job) jobView {
	return jobView{
		ID:        job.ID,
		Type:      job.Type,
		Name:      job.Name,
		Status:    job.Status,
		Progress:  job.Progress,
		Message:   job.Message,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: job.UpdatedAt.Format("2006-01-02 15:04:05"),
		Metadata:  job.Metadata,
	}
}

// GetJobs returns all jobs, newest first.
func (h *Handler) GetJobs(c *fiber.Ctx) error {
	jobs := h.service.GetJobs()
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, viewOf(job))
	}
	return c.JSON(views)
}

// GetJob returns a single job.
func (h *Handler) GetJob(c *fiber.Ctx) error {
	id := c.Params("id")
	job, exists := h.service.GetJob(id)
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(viewOf(job))
}

// CancelJob cancels a running job.
func (h *Handler) CancelJob(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("CancelJob handler called", "id", id)
	if err := h.service.CancelJob(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Job cancelled", "id": id})
}
