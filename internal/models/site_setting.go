package models

import "time"

// Site setting keys edited from the SEO section.
const (
	SettingSiteTitle        = "site_title"
	SettingSiteDescription  = "site_description"
	SettingOGImage          = "og_image"
	SettingSchoolName       = "school_name"
	SettingSchoolTagline    = "school_tagline"
	SettingSchoolPhone      = "school_phone"
	SettingSchoolEmail      = "school_email"
	SettingSchoolAddress    = "school_address"
	SettingSchoolHours      = "school_hours"
	SettingMissionStatement = "mission_statement"
)

// SiteSettingKeys lists every editable key in display order.
var SiteSettingKeys = []string{
	SettingSiteTitle,
	SettingSiteDescription,
	SettingOGImage,
	SettingSchoolName,
	SettingSchoolTagline,
	SettingSchoolPhone,
	SettingSchoolEmail,
	SettingSchoolAddress,
	SettingSchoolHours,
	SettingMissionStatement,
}

// SiteSetting is one key of the flat site metadata store.
type SiteSetting struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
