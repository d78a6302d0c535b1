package dto

// DashboardStats summarises the admin overview cards.
type DashboardStats struct {
	TotalEnrollments   int `json:"total_enrollments"`
	PendingEnrollments int `json:"pending_enrollments"`
	Teachers           int `json:"teachers"`
	Classes            int `json:"classes"`
	GalleryItems       int `json:"gallery_items"`
	UnreadMessages     int `json:"unread_messages"`
	TotalMessages      int `json:"total_messages"`
}
