package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

func TestDashboardSummary(t *testing.T) {
	gw := newFakeGateway()
	gw.seed(models.TableEnrollments,
		models.Row{"child_name": "A", "status": "pending", "date_of_birth": "2021-01-01"},
		models.Row{"child_name": "B", "status": "approved", "date_of_birth": "2021-01-01"},
		models.Row{"child_name": "C", "status": "pending", "date_of_birth": "2021-01-01"},
	)
	gw.seed(models.TableTeachers,
		models.Row{"name": "T1", "role": "Lead", "is_active": true},
		models.Row{"name": "T2", "role": "Aide", "is_active": false},
	)
	gw.seed(models.TableClasses, models.Row{"name": "Tiny Tots", "age_range": "2-3", "is_active": true})
	gw.seed(models.TableGallery,
		models.Row{"image_url": "a.jpg", "is_active": true},
		models.Row{"image_url": "b.jpg", "is_active": true},
	)
	gw.seed(models.TableContactMessages,
		models.Row{"name": "R", "email": "r@x.io", "message": "hi", "is_read": false},
		models.Row{"name": "S", "email": "s@x.io", "message": "hey", "is_read": true},
	)

	stats, err := NewDashboardService(gw, nil).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEnrollments)
	assert.Equal(t, 2, stats.PendingEnrollments)
	assert.Equal(t, 1, stats.Teachers)
	assert.Equal(t, 1, stats.Classes)
	assert.Equal(t, 2, stats.GalleryItems)
	assert.Equal(t, 1, stats.UnreadMessages)
	assert.Equal(t, 2, stats.TotalMessages)
	assert.Len(t, gw.callsFor("select"), 5)
}

func TestDashboardSummaryFailsWhenAnyReadFails(t *testing.T) {
	gw := newFakeGateway()
	gw.selectErr[models.TableGallery] = errGatewayDown

	stats, err := NewDashboardService(gw, nil).Summary(context.Background())
	assert.Nil(t, stats)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
}
