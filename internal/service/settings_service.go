package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

var knownSettingKeys = func() map[string]struct{} {
	keys := make(map[string]struct{}, len(models.SiteSettingKeys))
	for _, key := range models.SiteSettingKeys {
		keys[key] = struct{}{}
	}
	return keys
}()

// SettingsService reads and writes the flat site settings store.
type SettingsService struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(gateway Gateway, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{gateway: gateway, logger: logger}
}

// Load returns every stored setting keyed by key.
func (s *SettingsService) Load(ctx context.Context, notices *Notices) (map[string]string, error) {
	var rows []models.SiteSetting
	if err := s.gateway.Select(ctx, models.TableSiteSettings, models.Query{Order: []models.Order{models.Asc("key")}}, &rows); err != nil {
		s.logger.Warn("settings load failed", zap.Error(err))
		notices.Error("Failed to fetch settings")
		return nil, appErrors.Gateway(err, "Failed to fetch settings")
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// Save updates each submitted key in key order, one call per key, and stops
// at the first failure. Keys written before the failure stay written.
func (s *SettingsService) Save(ctx context.Context, form dto.SettingsForm, notices *Notices) error {
	keys := make([]string, 0, len(form.Values))
	unknown := map[string]string{}
	for key := range form.Values {
		if _, ok := knownSettingKeys[key]; !ok {
			unknown[key] = "unknown"
			continue
		}
		keys = append(keys, key)
	}
	if len(unknown) > 0 {
		return appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "unknown setting keys"), unknown)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.gateway.Update(ctx, models.TableSiteSettings, models.Row{"value": form.Values[key]}, models.Match{"key": key}); err != nil {
			message := fmt.Sprintf("Failed to update %s", key)
			s.logger.Warn("settings update failed", zap.String("key", key), zap.Error(err))
			notices.Error(message)
			return appErrors.Gateway(err, message)
		}
	}
	notices.Success("Settings saved successfully! 🎉")
	return nil
}

// Public returns settings for the marketing site. Non-blank stored values
// override the built-in defaults key by key; a failed read yields the
// defaults alone.
func (s *SettingsService) Public(ctx context.Context) (map[string]string, string) {
	values := fallbackSettings()
	var rows []models.SiteSetting
	if err := s.gateway.Select(ctx, models.TableSiteSettings, models.Query{}, &rows); err != nil {
		s.logger.Warn("public settings read failed, using defaults", zap.Error(err))
		return values, dto.SourceFallback
	}
	if len(rows) == 0 {
		return values, dto.SourceFallback
	}
	for _, row := range rows {
		if _, ok := knownSettingKeys[row.Key]; ok && strings.TrimSpace(row.Value) != "" {
			values[row.Key] = row.Value
		}
	}
	return values, dto.SourceRemote
}
