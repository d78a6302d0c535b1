package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = payload
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestPublicRendererEmptyResultUsesFallback(t *testing.T) {
	gw := newFakeGateway()
	svc := NewPublicContentService(gw, nil, nil, nil)

	for i := 0; i < 3; i++ {
		section := svc.Gallery(context.Background())
		assert.Equal(t, dto.SourceFallback, section.Source)
		assert.Equal(t, fallbackGallery(), section.Items)
	}
	assert.Len(t, gw.callsFor("select"), 3)
}

func TestPublicRendererErrorUsesFallback(t *testing.T) {
	gw := newFakeGateway()
	gw.selectErr[models.TableClasses] = errGatewayDown
	svc := NewPublicContentService(gw, nil, NewMetricsService(), nil)

	section := svc.Classes(context.Background())
	assert.Equal(t, dto.SourceFallback, section.Source)
	assert.Len(t, section.Items, len(fallbackClasses()))
}

func TestPublicRendererFallbackIsNotShared(t *testing.T) {
	svc := NewPublicContentService(newFakeGateway(), nil, nil, nil)
	first := svc.Activities(context.Background())
	first.Items[0].Name = "mutated"

	second := svc.Activities(context.Background())
	assert.NotEqual(t, "mutated", second.Items[0].Name)
}

func TestPublicRendererRemoteReplacesFallback(t *testing.T) {
	gw := newFakeGateway()
	gw.seed(models.TableTeachers,
		models.Row{"name": "Hidden", "role": "Aide", "display_order": 1, "is_active": false},
		models.Row{"name": "Ms. Sarah", "role": "Lead", "bio": "Loves **music**", "display_order": 2, "is_active": true},
	)
	svc := NewPublicContentService(gw, nil, nil, nil)

	section := svc.Teachers(context.Background())
	assert.Equal(t, dto.SourceRemote, section.Source)
	require.Len(t, section.Items, 1)
	assert.Equal(t, "Ms. Sarah", section.Items[0].Name)
	assert.Contains(t, section.Items[0].BioHTML, "<strong>music</strong>")

	selects := gw.callsFor("select")
	require.NotEmpty(t, selects)
	assert.Equal(t, models.Match{"is_active": true}, selects[0].Match)
}

func TestPublicRendererCachesRemoteRows(t *testing.T) {
	gw := newFakeGateway()
	gw.seed(models.TableTestimonials, models.Row{"name": "Priya", "role": "Parent", "content": "Great", "rating": 5, "is_active": true})
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	svc := NewPublicContentService(gw, cache, nil, nil)

	first := svc.Testimonials(context.Background())
	second := svc.Testimonials(context.Background())
	assert.Equal(t, dto.SourceRemote, second.Source)
	assert.Equal(t, first.Items[0].Name, second.Items[0].Name)
	assert.Len(t, gw.callsFor("select"), 1)

	svc.Invalidate(context.Background(), models.TableTestimonials)
	assert.Equal(t, []string{"public:*"}, repo.deleted)
	svc.Testimonials(context.Background())
	assert.Len(t, gw.callsFor("select"), 2)
}

func TestPublicSettingsMergeDefaults(t *testing.T) {
	gw := newFakeGateway()
	gw.seed(models.TableSiteSettings,
		models.Row{"key": models.SettingSchoolName, "value": "Rainbow Kids Pune"},
		models.Row{"key": models.SettingSchoolPhone, "value": ""},
		models.Row{"key": models.SettingMissionStatement, "value": "Play *first*"},
	)
	svc := NewPublicContentService(gw, nil, nil, nil)

	settings := svc.Settings(context.Background())
	assert.Equal(t, dto.SourceRemote, settings.Source)
	assert.Equal(t, "Rainbow Kids Pune", settings.Values[models.SettingSchoolName])
	assert.Equal(t, fallbackSettings()[models.SettingSchoolPhone], settings.Values[models.SettingSchoolPhone])
	assert.Contains(t, settings.MissionHTML, "<em>first</em>")
}

func TestPublicSettingsFailureUsesDefaults(t *testing.T) {
	gw := newFakeGateway()
	gw.selectErr[models.TableSiteSettings] = errGatewayDown
	svc := NewPublicContentService(gw, nil, nil, nil)

	settings := svc.Settings(context.Background())
	assert.Equal(t, dto.SourceFallback, settings.Source)
	assert.Equal(t, fallbackSettings(), settings.Values)
}
