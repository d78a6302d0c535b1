package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/pkg/markdown"
)

const publicCachePrefix = "public:"

type sectionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// SectionRenderer reads the active rows of one public section. It never
// fails: gateway errors and empty results both yield the fallback list.
type SectionRenderer[T any] struct {
	name     string
	table    string
	order    []models.Order
	fallback func() []T
	gateway  Gateway
	cache    sectionCache
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSectionRenderer constructs a renderer. cache may be nil.
func NewSectionRenderer[T any](name, table string, order []models.Order, fallback func() []T, gateway Gateway, cache sectionCache, logger *zap.Logger) *SectionRenderer[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionRenderer[T]{name: name, table: table, order: order, fallback: fallback, gateway: gateway, cache: cache, logger: logger}
}

// Render returns the live rows, or the fallback when there are none.
func (r *SectionRenderer[T]) Render(ctx context.Context) dto.Section[T] {
	key := publicCachePrefix + r.name
	if r.cache != nil {
		var cached []T
		if hit, _ := r.cache.Get(ctx, key, &cached); hit && len(cached) > 0 {
			return dto.Section[T]{Items: cached, Source: dto.SourceRemote}
		}
	}

	var rows []T
	err := r.gateway.Select(ctx, r.table, models.Query{
		Match: models.Match{"is_active": true},
		Order: r.order,
	}, &rows)
	if err != nil {
		r.logger.Warn("public section read failed, using fallback", zap.String("section", r.name), zap.Error(err))
		return r.fallbackSection()
	}
	if len(rows) == 0 {
		return r.fallbackSection()
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, rows, 0)
	}
	return dto.Section[T]{Items: rows, Source: dto.SourceRemote}
}

func (r *SectionRenderer[T]) fallbackSection() dto.Section[T] {
	r.metrics.RecordFallback(r.name)
	return dto.Section[T]{Items: r.fallback(), Source: dto.SourceFallback}
}

// PublicContentService serves every marketing section.
type PublicContentService struct {
	teachers     *SectionRenderer[models.Teacher]
	classes      *SectionRenderer[models.ClassProgram]
	activities   *SectionRenderer[models.Activity]
	gallery      *SectionRenderer[models.GalleryItem]
	testimonials *SectionRenderer[models.Testimonial]
	settings     *SettingsService
	cache        sectionCache
	logger       *zap.Logger
}

// NewPublicContentService wires renderers for all sections. cache and
// metrics may be nil.
func NewPublicContentService(gateway Gateway, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *PublicContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	var c sectionCache
	if cache != nil {
		c = cache
	}
	svc := &PublicContentService{
		teachers:     NewSectionRenderer("teachers", models.TableTeachers, byDisplayOrder, fallbackTeachers, gateway, c, logger),
		classes:      NewSectionRenderer("classes", models.TableClasses, byDisplayOrder, fallbackClasses, gateway, c, logger),
		activities:   NewSectionRenderer("activities", models.TableActivities, byDisplayOrder, fallbackActivities, gateway, c, logger),
		gallery:      NewSectionRenderer("gallery", models.TableGallery, byDisplayOrder, fallbackGallery, gateway, c, logger),
		testimonials: NewSectionRenderer("testimonials", models.TableTestimonials, newestFirst, fallbackTestimonials, gateway, c, logger),
		settings:     NewSettingsService(gateway, logger),
		cache:        c,
		logger:       logger,
	}
	svc.teachers.metrics = metrics
	svc.classes.metrics = metrics
	svc.activities.metrics = metrics
	svc.gallery.metrics = metrics
	svc.testimonials.metrics = metrics
	return svc
}

// Teachers renders the teachers section with bios converted from markdown.
func (s *PublicContentService) Teachers(ctx context.Context) dto.Section[dto.PublicTeacher] {
	section := s.teachers.Render(ctx)
	items := make([]dto.PublicTeacher, len(section.Items))
	for i, teacher := range section.Items {
		items[i] = dto.PublicTeacher{Teacher: teacher, BioHTML: markdown.ToHTML(deref(teacher.Bio))}
	}
	return dto.Section[dto.PublicTeacher]{Items: items, Source: section.Source}
}

// Classes renders the classes section.
func (s *PublicContentService) Classes(ctx context.Context) dto.Section[models.ClassProgram] {
	return s.classes.Render(ctx)
}

// Activities renders the activities section.
func (s *PublicContentService) Activities(ctx context.Context) dto.Section[models.Activity] {
	return s.activities.Render(ctx)
}

// Gallery renders the gallery section.
func (s *PublicContentService) Gallery(ctx context.Context) dto.Section[models.GalleryItem] {
	return s.gallery.Render(ctx)
}

// Testimonials renders the testimonials section, newest first.
func (s *PublicContentService) Testimonials(ctx context.Context) dto.Section[models.Testimonial] {
	return s.testimonials.Render(ctx)
}

// Settings returns the public site metadata.
func (s *PublicContentService) Settings(ctx context.Context) dto.PublicSettings {
	values, source := s.settings.Public(ctx)
	return dto.PublicSettings{
		Values:      values,
		MissionHTML: markdown.ToHTML(values[models.SettingMissionStatement]),
		Source:      source,
	}
}

// Invalidate drops every cached section. Editors call it after writes.
func (s *PublicContentService) Invalidate(ctx context.Context, table string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, publicCachePrefix+"*"); err != nil {
		s.logger.Warn("public cache invalidation failed", zap.String("table", table), zap.Error(err))
	}
}
