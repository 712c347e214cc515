package handler

import (
	"strings"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	"campus-jobs/internal/usecase/tracker"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type StudentHandler struct {
	tracker *tracker.Tracker
}

func NewStudentHandler(t *tracker.Tracker) *StudentHandler {
	return &StudentHandler{tracker: t}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/apply", h.Apply)
	r.Post("/save-job", h.ToggleSave)
	r.Get("/applications", h.Applications)
	r.Get("/saved-jobs", h.SavedJobs)
}

func (h *StudentHandler) Apply(c fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := parseID("jobId", req.JobID)
	if err != nil {
		return err
	}

	a, err := h.tracker.Apply(c.Context(), middleware.ClaimsFrom(c), jobID, req.CoverLetter)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *StudentHandler) ToggleSave(c fiber.Ctx) error {
	var req dto.SaveJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := parseID("jobId", req.JobID)
	if err != nil {
		return err
	}

	saved, err := h.tracker.ToggleSave(c.Context(), middleware.ClaimsFrom(c), jobID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.SaveJobResponse{Saved: saved})
}

func (h *StudentHandler) Applications(c fiber.Ctx) error {
	var jobID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("jobId")); raw != "" {
		id, err := parseID("jobId", raw)
		if err != nil {
			return err
		}
		jobID = &id
	}

	items, err := h.tracker.ListApplications(c.Context(), middleware.ClaimsFrom(c), jobID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewApplicationListResponse(items))
}

func (h *StudentHandler) SavedJobs(c fiber.Ctx) error {
	items, err := h.tracker.ListSavedJobs(c.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewSavedJobListResponse(items))
}
