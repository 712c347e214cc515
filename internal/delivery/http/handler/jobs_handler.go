package handler

import (
	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	"campus-jobs/internal/usecase/catalog"
	"campus-jobs/internal/usecase/tracker"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	catalog *catalog.Catalog
	tracker *tracker.Tracker
}

func NewJobsHandler(c *catalog.Catalog, t *tracker.Tracker) *JobsHandler {
	return &JobsHandler{catalog: c, tracker: t}
}

// RegisterRoutes mounts the public listing on r and the employer operations
// behind auth.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListActive)
	r.Post("/jobs", auth, h.Create)
	r.Delete("/jobs/:id", auth, h.Delete)
	r.Get("/jobs/:id/applicants", auth, h.Applicants)
	r.Get("/employer/jobs", auth, h.ListOwn)
}

func (h *JobsHandler) ListActive(c fiber.Ctx) error {
	items, err := h.catalog.ListActiveJobs(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewJobListResponse(items))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req catalog.CreateJobInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	l, err := h.catalog.CreateJob(c.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Job created", dto.NewJobResponse(l))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteJob(c.Context(), middleware.ClaimsFrom(c), id); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

func (h *JobsHandler) Applicants(c fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return err
	}

	items, err := h.tracker.ListApplicants(c.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewApplicantListResponse(items))
}

func (h *JobsHandler) ListOwn(c fiber.Ctx) error {
	items, err := h.catalog.ListOwnJobs(c.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewJobListResponse(items))
}
