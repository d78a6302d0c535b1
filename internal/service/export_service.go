package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/export"
)

// ExportFile is a rendered export ready to stream back to the admin.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the enrollment list as CSV or PDF.
type ExportService struct {
	gateway   Gateway
	exporters map[string]export.Exporter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(gateway Gateway, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	csv := export.NewCSVExporter()
	pdf := export.NewPDFExporter()
	return &ExportService{
		gateway: gateway,
		exporters: map[string]export.Exporter{
			csv.Extension(): csv,
			pdf.Extension(): pdf,
		},
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

var enrollmentExportHeaders = []string{"Child", "Date of birth", "Program", "Parent", "Email", "Phone", "Status", "Submitted"}

// Enrollments renders enrollments matching query in format ("csv" or "pdf").
func (s *ExportService) Enrollments(ctx context.Context, format, query string) (*ExportFile, error) {
	exporter, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "unsupported export format"), map[string]string{"format": "oneof"})
	}

	desk := NewEnrollmentDesk(s.gateway, s.validator, s.logger)
	if err := desk.Load(ctx); err != nil {
		return nil, err
	}

	dataset := export.Dataset{Title: "Enrollment requests", Headers: enrollmentExportHeaders}
	for _, e := range desk.Search(query) {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Child":         e.ChildName,
			"Date of birth": e.DateOfBirth.String(),
			"Program":       e.ClassType,
			"Parent":        e.ParentName,
			"Email":         e.Email,
			"Phone":         e.Phone,
			"Status":        string(e.Status),
			"Submitted":     e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	content, err := exporter.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("enrollments-%s.%s", s.now().UTC().Format("20060102-150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}
