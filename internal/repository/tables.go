package repository

import (
	"fmt"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

type tableSchema struct {
	columns    []string
	columnSet  map[string]struct{}
	hasCreated bool
	hasUpdated bool
}

func newTableSchema(hasCreated, hasUpdated bool, columns ...string) tableSchema {
	set := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		set[column] = struct{}{}
	}
	return tableSchema{columns: columns, columnSet: set, hasCreated: hasCreated, hasUpdated: hasUpdated}
}

func (s tableSchema) has(column string) bool {
	_, ok := s.columnSet[column]
	return ok
}

// gatewayTables whitelists every table and column reachable from the gateway.
// Table and column names are interpolated into SQL, so nothing outside this
// map may be used.
var gatewayTables = map[string]tableSchema{
	models.TableTeachers: newTableSchema(true, true,
		"id", "name", "role", "bio", "image_url", "color_class", "display_order", "is_active", "created_at"),
	models.TableClasses: newTableSchema(true, true,
		"id", "name", "age_range", "description", "features", "icon_name", "color_class", "bg_color_class", "display_order", "is_active", "created_at"),
	models.TableActivities: newTableSchema(true, true,
		"id", "name", "description", "emoji", "icon_name", "color_class", "display_order", "is_active", "created_at"),
	models.TableGallery: newTableSchema(true, true,
		"id", "image_url", "alt_text", "category", "display_order", "is_active", "created_at"),
	models.TableTestimonials: newTableSchema(true, true,
		"id", "name", "role", "content", "rating", "avatar_initials", "color_class", "is_active", "created_at"),
	models.TableEnrollments: newTableSchema(true, true,
		"id", "child_name", "date_of_birth", "class_type", "parent_name", "email", "phone", "status", "created_at"),
	models.TableContactMessages: newTableSchema(true, true,
		"id", "name", "email", "phone", "message", "is_read", "created_at"),
	models.TableSiteSettings: newTableSchema(false, true,
		"id", "key", "value", "updated_at"),
	models.TableUserRoles: newTableSchema(true, false,
		"id", "user_id", "role", "created_at"),
}

func lookupTable(table string) (tableSchema, error) {
	schema, ok := gatewayTables[table]
	if !ok {
		return tableSchema{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown table %q", table))
	}
	return schema, nil
}

func (s tableSchema) checkColumns(table string, columns []string) error {
	for _, column := range columns {
		if !s.has(column) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown column %q on %s", column, table))
		}
	}
	return nil
}
