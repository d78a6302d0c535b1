package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// DashboardService builds the admin overview cards.
type DashboardService struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(gateway Gateway, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{gateway: gateway, logger: logger}
}

// Summary issues its five reads concurrently and waits for all of them. A
// single failed read fails the whole summary.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardStats, error) {
	var (
		enrollments []models.Enrollment
		teachers    []models.Teacher
		classes     []models.ClassProgram
		gallery     []models.GalleryItem
		messages    []models.ContactMessage
	)
	active := models.Query{Match: models.Match{"is_active": true}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.gateway.Select(gctx, models.TableEnrollments, models.Query{}, &enrollments)
	})
	g.Go(func() error {
		return s.gateway.Select(gctx, models.TableTeachers, active, &teachers)
	})
	g.Go(func() error {
		return s.gateway.Select(gctx, models.TableClasses, active, &classes)
	})
	g.Go(func() error {
		return s.gateway.Select(gctx, models.TableGallery, active, &gallery)
	})
	g.Go(func() error {
		return s.gateway.Select(gctx, models.TableContactMessages, models.Query{}, &messages)
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard summary failed", zap.Error(err))
		return nil, appErrors.Gateway(err, "Failed to load dashboard")
	}

	stats := &dto.DashboardStats{
		TotalEnrollments: len(enrollments),
		Teachers:         len(teachers),
		Classes:          len(classes),
		GalleryItems:     len(gallery),
		TotalMessages:    len(messages),
	}
	for _, enrollment := range enrollments {
		if enrollment.Status == models.EnrollmentPending {
			stats.PendingEnrollments++
		}
	}
	for _, message := range messages {
		if !message.IsRead {
			stats.UnreadMessages++
		}
	}
	return stats, nil
}
