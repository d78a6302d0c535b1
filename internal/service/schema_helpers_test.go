package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

func TestAvatarInitials(t *testing.T) {
	assert.Equal(t, "PP", AvatarInitials("Priya Patel"))
	assert.Equal(t, "A", AvatarInitials("anita"))
	assert.Equal(t, "MJ", AvatarInitials("  mary  jane watson "))
	assert.Equal(t, "", AvatarInitials("   "))
}

func TestSplitFeatures(t *testing.T) {
	assert.Equal(t, []string{"Sensory Play", "Basic Shapes"}, SplitFeatures("Sensory Play, Basic Shapes,  "))
	assert.Empty(t, SplitFeatures(" , ,"))
	assert.Equal(t, "Sensory Play, Basic Shapes", JoinFeatures([]string{"Sensory Play", "Basic Shapes"}))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	items := []string{"Emma", "Liam", "emmett"}
	got := Search(items, " EMM ", func(s string) []string { return []string{s} })
	assert.Equal(t, []string{"Emma", "emmett"}, got)
	assert.Len(t, Search(items, "", func(s string) []string { return []string{s} }), 3)
}

func TestTestimonialSaveDerivesBlankInitials(t *testing.T) {
	gw := newFakeGateway()
	editor := NewEditor(gw, TestimonialSchema(), nil, nil)
	editor.OpenCreate()
	assert.Equal(t, 5, editor.Form().Draft.Rating)
	editor.Form().Draft.Name = "Priya Patel"
	editor.Form().Draft.Role = "Parent of Aarav"
	editor.Form().Draft.Content = "Wonderful teachers."

	require.NoError(t, editor.Save(context.Background()))
	inserts := gw.callsFor("insert")
	require.Len(t, inserts, 1)
	assert.Equal(t, "PP", inserts[0].Row["avatar_initials"])
}

func TestTestimonialSaveKeepsTypedInitials(t *testing.T) {
	gw := newFakeGateway()
	editor := NewEditor(gw, TestimonialSchema(), nil, nil)
	editor.OpenCreate()
	editor.Form().Draft.Name = "anita"
	editor.Form().Draft.Role = "Parent"
	editor.Form().Draft.Content = "Great."
	editor.Form().Draft.AvatarInitials = "AN"

	require.NoError(t, editor.Save(context.Background()))
	assert.Equal(t, "AN", gw.callsFor("insert")[0].Row["avatar_initials"])
}

func TestTestimonialRatingBounds(t *testing.T) {
	gw := newFakeGateway()
	editor := NewEditor(gw, TestimonialSchema(), nil, nil)
	editor.OpenCreate()
	editor.Form().Draft.Name = "anita"
	editor.Form().Draft.Role = "Parent"
	editor.Form().Draft.Content = "Great."
	editor.Form().Draft.Rating = 6

	require.Error(t, editor.Save(context.Background()))
	assert.Empty(t, gw.callsFor("insert"))
}

func TestTestimonialsLoadNewestFirst(t *testing.T) {
	gw := newFakeGateway()
	gw.seed(models.TableTestimonials,
		models.Row{"name": "First", "role": "Parent", "content": "a", "rating": 5, "is_active": true},
		models.Row{"name": "Second", "role": "Parent", "content": "b", "rating": 4, "is_active": true},
	)
	editor := NewEditor(gw, TestimonialSchema(), nil, nil)
	require.NoError(t, editor.Load(context.Background()))
	items := editor.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Name)
}
