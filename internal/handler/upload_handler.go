package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type imageUploader interface {
	UploadImage(folder, filename string, r io.Reader, notices *service.Notices) (*dto.UploadResult, error)
}

// UploadHandler accepts admin image uploads.
type UploadHandler struct {
	uploader imageUploader
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(uploader imageUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Image godoc
// @Summary Upload an image
// @Description Stores an image of at most 5 MB and returns its public URL
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param folder formData string false "Target folder" default(uploads)
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/uploads [post]
func (h *UploadHandler) Image(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.WithFields(bindError(err, "file is required"), map[string]string{"file": "required"}))
		return
	}
	folder := c.DefaultPostForm("folder", "uploads")

	var notices service.Notices
	var result *dto.UploadResult
	ok, err := underShell(c, func() error {
		file, err := header.Open()
		if err != nil {
			notices.Error(service.UploadFailedMessage)
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, service.UploadFailedMessage)
		}
		defer file.Close()
		result, err = h.uploader.UploadImage(folder, header.Filename, file, &notices)
		return err
	})
	if !ok {
		return
	}
	if err != nil {
		response.Error(c, err, noticeMeta(c, notices.List(), nil))
		return
	}
	response.Created(c, result, noticeMeta(c, notices.List(), nil))
}
