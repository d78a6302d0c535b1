package service

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// DefaultBucket holds every image uploaded from the dashboard.
const DefaultBucket = "school-images"

// Upload notices.
const (
	UploadNotImageMessage = "Please upload an image file"
	UploadTooLargeMessage = "Image must be less than 5MB"
	UploadSuccessMessage  = "Image uploaded successfully!"
	UploadFailedMessage   = "Failed to upload image"
)

type objectStore interface {
	Upload(bucket, objectPath string, r io.Reader) error
	PublicURL(bucket, objectPath string) string
}

// UploadConfig tunes upload limits.
type UploadConfig struct {
	Bucket  string
	MaxSize int64
}

// UploadService stores dashboard images and returns their public URL.
type UploadService struct {
	store   objectStore
	bucket  string
	maxSize int64
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploadService constructs an UploadService.
func NewUploadService(store objectStore, cfg UploadConfig, logger *zap.Logger) *UploadService {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 5 * 1024 * 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, bucket: cfg.Bucket, maxSize: cfg.MaxSize, logger: logger, now: time.Now}
}

// UploadImage checks that r holds an image no larger than the limit, stores
// it under folder and returns its public location. Rejected files never
// reach the store.
func (s *UploadService) UploadImage(folder, filename string, r io.Reader, notices *Notices) (*dto.UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		notices.Error(UploadFailedMessage)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, UploadFailedMessage)
	}

	// The stored extension follows the sniffed type. SVG is refused.
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") || mtype.Is("image/svg+xml") || mtype.Extension() == "" {
		notices.Error(UploadNotImageMessage)
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, UploadNotImageMessage), map[string]string{"file": "image"})
	}
	if int64(len(data)) > s.maxSize {
		notices.Error(UploadTooLargeMessage)
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, UploadTooLargeMessage), map[string]string{"file": "max"})
	}

	objectPath, err := s.objectPath(folder, mtype)
	if err != nil {
		notices.Error(UploadFailedMessage)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, UploadFailedMessage)
	}
	if err := s.store.Upload(s.bucket, objectPath, bytes.NewReader(data)); err != nil {
		s.logger.Warn("image upload failed", zap.String("path", objectPath), zap.String("filename", filename), zap.Error(err))
		notices.Error(UploadFailedMessage)
		return nil, appErrors.Gateway(err, UploadFailedMessage)
	}

	notices.Success(UploadSuccessMessage)
	return &dto.UploadResult{
		Bucket:      s.bucket,
		Path:        objectPath,
		PublicURL:   s.store.PublicURL(s.bucket, objectPath),
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}, nil
}

func (s *UploadService) objectPath(folder string, mtype *mimetype.MIME) (string, error) {
	ext := strings.TrimPrefix(mtype.Extension(), ".")
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate object name: %w", err)
	}
	name := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), hex.EncodeToString(suffix), ext)

	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" {
		return name, nil
	}
	return folder + "/" + name, nil
}
