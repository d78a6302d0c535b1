package dto

// SettingsForm is the SEO editor payload keyed by setting key.
type SettingsForm struct {
	Values map[string]string `json:"values"`
}
