package dto

// UploadResult describes a stored image.
type UploadResult struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	PublicURL   string `json:"public_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
