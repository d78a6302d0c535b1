package service

import (
	"strings"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

// Defaults applied to fresh drafts.
const (
	defaultColor       = "from-candy to-candy-dark"
	defaultClassIcon   = "Baby"
	defaultClassBg     = "bg-candy/10"
	defaultEmoji       = "🎨"
	defaultActivityIcn = "Palette"
	defaultSolidColor  = "bg-candy"
)

var byDisplayOrder = []models.Order{models.Asc("display_order")}
var newestFirst = []models.Order{models.Desc("created_at")}

// TeacherSchema drives the teachers editor.
func TeacherSchema() EntitySchema[models.Teacher, dto.TeacherForm] {
	return EntitySchema[models.Teacher, dto.TeacherForm]{
		Table:  models.TableTeachers,
		Labels: EntityLabels{Title: "Teacher", Singular: "teacher", Plural: "teachers"},
		Order:  byDisplayOrder,
		ID:     func(t models.Teacher) string { return t.ID },
		Active: func(t models.Teacher) bool { return t.IsActive },
		Defaults: func(next int) dto.TeacherForm {
			return dto.TeacherForm{ColorClass: defaultColor, DisplayOrder: next, IsActive: true}
		},
		Draft: func(t models.Teacher) dto.TeacherForm {
			return dto.TeacherForm{
				Name:         t.Name,
				Role:         t.Role,
				Bio:          deref(t.Bio),
				ImageURL:     deref(t.ImageURL),
				ColorClass:   deref(t.ColorClass),
				DisplayOrder: t.DisplayOrder,
				IsActive:     t.IsActive,
			}
		},
		Row: func(f dto.TeacherForm) models.Row {
			return models.Row{
				"name":          strings.TrimSpace(f.Name),
				"role":          strings.TrimSpace(f.Role),
				"bio":           nullable(f.Bio),
				"image_url":     nullable(f.ImageURL),
				"color_class":   nullable(f.ColorClass),
				"display_order": f.DisplayOrder,
				"is_active":     f.IsActive,
			}
		},
		RequiredMessage: "Name and role are required",
	}
}

// ClassSchema drives the classes editor.
func ClassSchema() EntitySchema[models.ClassProgram, dto.ClassForm] {
	return EntitySchema[models.ClassProgram, dto.ClassForm]{
		Table:  models.TableClasses,
		Labels: EntityLabels{Title: "Class", Singular: "class", Plural: "classes"},
		Order:  byDisplayOrder,
		ID:     func(c models.ClassProgram) string { return c.ID },
		Active: func(c models.ClassProgram) bool { return c.IsActive },
		Defaults: func(next int) dto.ClassForm {
			return dto.ClassForm{
				IconName:     defaultClassIcon,
				ColorClass:   defaultColor,
				BgColorClass: defaultClassBg,
				DisplayOrder: next,
				IsActive:     true,
			}
		},
		Draft: func(c models.ClassProgram) dto.ClassForm {
			return dto.ClassForm{
				Name:         c.Name,
				AgeRange:     c.AgeRange,
				Description:  deref(c.Description),
				Features:     JoinFeatures(c.Features),
				IconName:     deref(c.IconName),
				ColorClass:   deref(c.ColorClass),
				BgColorClass: deref(c.BgColorClass),
				DisplayOrder: c.DisplayOrder,
				IsActive:     c.IsActive,
			}
		},
		Row: func(f dto.ClassForm) models.Row {
			return models.Row{
				"name":           strings.TrimSpace(f.Name),
				"age_range":      strings.TrimSpace(f.AgeRange),
				"description":    nullable(f.Description),
				"features":       SplitFeatures(f.Features),
				"icon_name":      nullable(f.IconName),
				"color_class":    nullable(f.ColorClass),
				"bg_color_class": nullable(f.BgColorClass),
				"display_order":  f.DisplayOrder,
				"is_active":      f.IsActive,
			}
		},
		RequiredMessage: "Name and age range are required",
	}
}

// ActivitySchema drives the activities editor.
func ActivitySchema() EntitySchema[models.Activity, dto.ActivityForm] {
	return EntitySchema[models.Activity, dto.ActivityForm]{
		Table:  models.TableActivities,
		Labels: EntityLabels{Title: "Activity", Singular: "activity", Plural: "activities"},
		Order:  byDisplayOrder,
		ID:     func(a models.Activity) string { return a.ID },
		Active: func(a models.Activity) bool { return a.IsActive },
		Defaults: func(next int) dto.ActivityForm {
			return dto.ActivityForm{
				Emoji:        defaultEmoji,
				IconName:     defaultActivityIcn,
				ColorClass:   defaultSolidColor,
				DisplayOrder: next,
				IsActive:     true,
			}
		},
		Draft: func(a models.Activity) dto.ActivityForm {
			return dto.ActivityForm{
				Name:         a.Name,
				Description:  deref(a.Description),
				Emoji:        deref(a.Emoji),
				IconName:     deref(a.IconName),
				ColorClass:   deref(a.ColorClass),
				DisplayOrder: a.DisplayOrder,
				IsActive:     a.IsActive,
			}
		},
		Row: func(f dto.ActivityForm) models.Row {
			return models.Row{
				"name":          strings.TrimSpace(f.Name),
				"description":   nullable(f.Description),
				"emoji":         nullable(f.Emoji),
				"icon_name":     nullable(f.IconName),
				"color_class":   nullable(f.ColorClass),
				"display_order": f.DisplayOrder,
				"is_active":     f.IsActive,
			}
		},
		RequiredMessage: "Name is required",
	}
}

// GallerySchema drives the gallery editor.
func GallerySchema() EntitySchema[models.GalleryItem, dto.GalleryForm] {
	return EntitySchema[models.GalleryItem, dto.GalleryForm]{
		Table:  models.TableGallery,
		Labels: EntityLabels{Title: "Image", Singular: "image", Plural: "gallery"},
		Order:  byDisplayOrder,
		ID:     func(g models.GalleryItem) string { return g.ID },
		Active: func(g models.GalleryItem) bool { return g.IsActive },
		Defaults: func(next int) dto.GalleryForm {
			return dto.GalleryForm{DisplayOrder: next, IsActive: true}
		},
		Draft: func(g models.GalleryItem) dto.GalleryForm {
			return dto.GalleryForm{
				ImageURL:     g.ImageURL,
				AltText:      deref(g.AltText),
				Category:     deref(g.Category),
				DisplayOrder: g.DisplayOrder,
				IsActive:     g.IsActive,
			}
		},
		Row: func(f dto.GalleryForm) models.Row {
			return models.Row{
				"image_url":     strings.TrimSpace(f.ImageURL),
				"alt_text":      nullable(f.AltText),
				"category":      nullable(f.Category),
				"display_order": f.DisplayOrder,
				"is_active":     f.IsActive,
			}
		},
		RequiredMessage: "Image URL is required",
	}
}

// TestimonialSchema drives the testimonials editor. Blank initials are
// derived from the name when saving.
func TestimonialSchema() EntitySchema[models.Testimonial, dto.TestimonialForm] {
	return EntitySchema[models.Testimonial, dto.TestimonialForm]{
		Table:  models.TableTestimonials,
		Labels: EntityLabels{Title: "Testimonial", Singular: "testimonial", Plural: "testimonials"},
		Order:  newestFirst,
		ID:     func(t models.Testimonial) string { return t.ID },
		Active: func(t models.Testimonial) bool { return t.IsActive },
		Defaults: func(int) dto.TestimonialForm {
			return dto.TestimonialForm{Rating: 5, ColorClass: defaultSolidColor, IsActive: true}
		},
		Draft: func(t models.Testimonial) dto.TestimonialForm {
			return dto.TestimonialForm{
				Name:           t.Name,
				Role:           t.Role,
				Content:        t.Content,
				Rating:         t.Rating,
				AvatarInitials: deref(t.AvatarInitials),
				ColorClass:     deref(t.ColorClass),
				IsActive:       t.IsActive,
			}
		},
		Prepare: func(f *dto.TestimonialForm) {
			if strings.TrimSpace(f.AvatarInitials) == "" {
				f.AvatarInitials = AvatarInitials(f.Name)
			}
		},
		Row: func(f dto.TestimonialForm) models.Row {
			return models.Row{
				"name":            strings.TrimSpace(f.Name),
				"role":            strings.TrimSpace(f.Role),
				"content":         strings.TrimSpace(f.Content),
				"rating":          f.Rating,
				"avatar_initials": nullable(f.AvatarInitials),
				"color_class":     nullable(f.ColorClass),
				"is_active":       f.IsActive,
			}
		},
		RequiredMessage: "Name, role, and content are required",
	}
}

// EnrollmentSchema drives the enrollment desk. Rows come from visitors, so
// there are no drafts.
func EnrollmentSchema() EntitySchema[models.Enrollment, dto.NoForm] {
	return EntitySchema[models.Enrollment, dto.NoForm]{
		Table:  models.TableEnrollments,
		Labels: EntityLabels{Title: "Enrollment", Singular: "enrollment", Plural: "enrollments"},
		Order:  newestFirst,
		ID:     func(e models.Enrollment) string { return e.ID },
	}
}

// MessageSchema drives the message inbox.
func MessageSchema() EntitySchema[models.ContactMessage, dto.NoForm] {
	return EntitySchema[models.ContactMessage, dto.NoForm]{
		Table:  models.TableContactMessages,
		Labels: EntityLabels{Title: "Message", Singular: "message", Plural: "messages"},
		Order:  newestFirst,
		ID:     func(m models.ContactMessage) string { return m.ID },
	}
}
