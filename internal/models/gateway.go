package models

// Table names exposed through the data gateway.
const (
	TableTeachers        = "teachers"
	TableClasses         = "classes"
	TableActivities      = "activities"
	TableGallery         = "gallery"
	TableTestimonials    = "testimonials"
	TableEnrollments     = "enrollments"
	TableContactMessages = "contact_messages"
	TableSiteSettings    = "site_settings"
	TableUserRoles       = "user_roles"
)

// Row is a column to value map used for inserts and partial updates.
type Row map[string]interface{}

// Match is a conjunction of column equality filters.
type Match map[string]interface{}

// Order describes a single sort key.
type Order struct {
	Column     string
	Descending bool
}

// Query narrows a select against one table.
type Query struct {
	Match Match
	Order []Order
}

// Asc orders by column ascending.
func Asc(column string) Order { return Order{Column: column} }

// Desc orders by column descending.
func Desc(column string) Order { return Order{Column: column, Descending: true} }
