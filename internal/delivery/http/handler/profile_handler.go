package handler

import (
	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	"campus-jobs/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	svc *profile.Service
}

func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// RegisterRoutes expects r to be the API root.
func (h *ProfileHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/student/profile", auth, h.GetStudent)
	r.Patch("/student/profile", auth, h.UpdateStudent)
	r.Post("/student/upload-resume", auth, h.UploadResume)
	r.Get("/employer/profile", auth, h.GetEmployer)
	r.Patch("/employer/profile", auth, h.UpdateEmployer)
}

func (h *ProfileHandler) GetStudent(c fiber.Ctx) error {
	p, err := h.svc.GetStudentProfile(c.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewStudentProfileResponse(p))
}

func (h *ProfileHandler) UpdateStudent(c fiber.Ctx) error {
	var req profile.StudentProfileInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.svc.UpdateStudentProfile(c.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewStudentProfileResponse(p))
}

func (h *ProfileHandler) GetEmployer(c fiber.Ctx) error {
	p, err := h.svc.GetEmployerProfile(c.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewEmployerProfileResponse(p))
}

func (h *ProfileHandler) UpdateEmployer(c fiber.Ctx) error {
	var req profile.EmployerProfileInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.svc.UpdateEmployerProfile(c.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewEmployerProfileResponse(p))
}

func (h *ProfileHandler) UploadResume(c fiber.Ctx) error {
	var req profile.ResumeUpload
	if err := bindBody(c, &req); err != nil {
		return err
	}

	url, err := h.svc.UploadResume(c.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Resume uploaded", dto.UploadResponse{URL: url})
}
