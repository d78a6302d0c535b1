package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type intakeService interface {
	SubmitEnrollment(ctx context.Context, req dto.EnrollmentRequest) (dto.IntakeResult[dto.EnrollmentRequest], error)
	SubmitContact(ctx context.Context, req dto.ContactRequest) (dto.IntakeResult[dto.ContactRequest], error)
}

// IntakeHandler accepts the visitor enrollment and contact forms.
type IntakeHandler struct {
	service intakeService
}

// NewIntakeHandler constructs an intake handler.
func NewIntakeHandler(svc intakeService) *IntakeHandler {
	return &IntakeHandler{service: svc}
}

// Enrollment godoc
// @Summary Submit enrollment request
// @Description Files a pending enrollment. On failure the submitted form is echoed back in data.form.
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body dto.EnrollmentRequest true "Enrollment form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /public/enrollments [post]
func (h *IntakeHandler) Enrollment(c *gin.Context) {
	var req dto.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid enrollment payload"))
		return
	}
	result, err := h.service.SubmitEnrollment(c.Request.Context(), req)
	if err != nil {
		response.ErrorWithData(c, err, result, middleware.ExtractMeta(c, nil))
		return
	}
	response.Created(c, result, middleware.ExtractMeta(c, nil))
}

// Contact godoc
// @Summary Send contact message
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body dto.ContactRequest true "Contact form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /public/contact [post]
func (h *IntakeHandler) Contact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid contact payload"))
		return
	}
	result, err := h.service.SubmitContact(c.Request.Context(), req)
	if err != nil {
		response.ErrorWithData(c, err, result, middleware.ExtractMeta(c, nil))
		return
	}
	response.Created(c, result, middleware.ExtractMeta(c, nil))
}
