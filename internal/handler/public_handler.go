package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type publicContent interface {
	Teachers(ctx context.Context) dto.Section[dto.PublicTeacher]
	Classes(ctx context.Context) dto.Section[models.ClassProgram]
	Activities(ctx context.Context) dto.Section[models.Activity]
	Gallery(ctx context.Context) dto.Section[models.GalleryItem]
	Testimonials(ctx context.Context) dto.Section[models.Testimonial]
	Settings(ctx context.Context) dto.PublicSettings
}

// PublicHandler serves the marketing site sections. Every endpoint answers
// 200; a gateway outage is reported through meta.source only.
type PublicHandler struct {
	content publicContent
}

// NewPublicHandler constructs a public content handler.
func NewPublicHandler(content publicContent) *PublicHandler {
	return &PublicHandler{content: content}
}

// Register mounts the public section routes on group.
func (h *PublicHandler) Register(group *gin.RouterGroup) {
	group.GET("/teachers", h.Teachers)
	group.GET("/classes", h.Classes)
	group.GET("/activities", h.Activities)
	group.GET("/gallery", h.Gallery)
	group.GET("/testimonials", h.Testimonials)
	group.GET("/settings", h.Settings)
}

// Teachers godoc
// @Summary Public teachers
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/teachers [get]
func (h *PublicHandler) Teachers(c *gin.Context) {
	section := h.content.Teachers(c.Request.Context())
	writeSection(c, section.Items, section.Source)
}

// Classes godoc
// @Summary Public class programs
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/classes [get]
func (h *PublicHandler) Classes(c *gin.Context) {
	section := h.content.Classes(c.Request.Context())
	writeSection(c, section.Items, section.Source)
}

// Activities godoc
// @Summary Public activities
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/activities [get]
func (h *PublicHandler) Activities(c *gin.Context) {
	section := h.content.Activities(c.Request.Context())
	writeSection(c, section.Items, section.Source)
}

// Gallery godoc
// @Summary Public gallery
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/gallery [get]
func (h *PublicHandler) Gallery(c *gin.Context) {
	section := h.content.Gallery(c.Request.Context())
	writeSection(c, section.Items, section.Source)
}

// Testimonials godoc
// @Summary Public testimonials
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/testimonials [get]
func (h *PublicHandler) Testimonials(c *gin.Context) {
	section := h.content.Testimonials(c.Request.Context())
	writeSection(c, section.Items, section.Source)
}

// Settings godoc
// @Summary Public site settings
// @Description School contact details and SEO values, with defaults for anything unset
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/settings [get]
func (h *PublicHandler) Settings(c *gin.Context) {
	settings := h.content.Settings(c.Request.Context())
	writeSection(c, settings, settings.Source)
}

func writeSection(c *gin.Context, data interface{}, source string) {
	middleware.SetSource(c, source)
	response.Public(c, data, middleware.ExtractMeta(c, nil))
}
