package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

func seedSettings(gw *fakeGateway) {
	for _, key := range models.SiteSettingKeys {
		gw.seed(models.TableSiteSettings, models.Row{"key": key, "value": "", "updated_at": gw.clock})
	}
}

func TestSettingsSaveUpdatesEachKeyInOrder(t *testing.T) {
	gw := newFakeGateway()
	seedSettings(gw)
	svc := NewSettingsService(gw, nil)
	notices := &Notices{}

	err := svc.Save(context.Background(), dto.SettingsForm{Values: map[string]string{
		models.SettingSiteTitle:  "Rainbow Kids",
		models.SettingSchoolName: "Rainbow Kids Academy",
	}}, notices)
	require.NoError(t, err)

	updates := gw.callsFor("update")
	require.Len(t, updates, 2)
	assert.Equal(t, models.Match{"key": models.SettingSchoolName}, updates[0].Match)
	assert.Equal(t, models.Match{"key": models.SettingSiteTitle}, updates[1].Match)
	assert.Equal(t, []Notice{{Level: NoticeSuccess, Message: "Settings saved successfully! 🎉"}}, notices.List())

	values, err := svc.Load(context.Background(), notices)
	require.NoError(t, err)
	assert.Equal(t, "Rainbow Kids", values[models.SettingSiteTitle])
}

func TestSettingsSaveStopsAtFirstFailure(t *testing.T) {
	gw := newFakeGateway()
	seedSettings(gw)
	gw.updateErr[models.TableSiteSettings] = errGatewayDown
	svc := NewSettingsService(gw, nil)
	notices := &Notices{}

	err := svc.Save(context.Background(), dto.SettingsForm{Values: map[string]string{
		models.SettingOGImage:   "og.png",
		models.SettingSiteTitle: "Rainbow Kids",
	}}, notices)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
	assert.Len(t, gw.callsFor("update"), 1)
	assert.Equal(t, []Notice{{Level: NoticeError, Message: "Failed to update og_image"}}, notices.List())
}

func TestSettingsSaveRejectsUnknownKeys(t *testing.T) {
	gw := newFakeGateway()
	svc := NewSettingsService(gw, nil)

	err := svc.Save(context.Background(), dto.SettingsForm{Values: map[string]string{"favicon": "x"}}, &Notices{})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unknown", appErr.Fields["favicon"])
	assert.Empty(t, gw.callsFor("update"))
}

func TestSettingsLoadFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.selectErr[models.TableSiteSettings] = errGatewayDown
	notices := &Notices{}

	_, err := NewSettingsService(gw, nil).Load(context.Background(), notices)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch settings", notices.List()[0].Message)
}
