package model

import "time"

// LanguageSetting holds the admin-curated showcase block for one programming
// language on the landing page.
type LanguageSetting struct {
	Heading string `bson:"heading" json:"heading"`
	Code    string `bson:"code"    json:"code"`
	Color   string `bson:"color"   json:"color"`
}

// Setting is the singleton site configuration document. It is read by the
// frontend header to toggle optional nav features and updated from the admin
// panel with last-writer-wins semantics; there is no versioning.
type Setting struct {
	ID         string                     `bson:"_id"         json:"-"`
	IsAddCode  bool                       `bson:"is_add_code" json:"isAddCode"`
	IsPostJob  bool                       `bson:"is_post_job" json:"isPostJob"`
	IsApplyJob bool                       `bson:"is_apply_job" json:"isApplyJob"`
	IsJobs     bool                       `bson:"is_jobs"     json:"isJobs"`
	Languages  map[string]LanguageSetting `bson:"languages"   json:"languages"`
	UpdatedAt  time.Time                  `bson:"updated_at"  json:"updatedAt"`
}

// SettingID is the fixed key of the singleton settings document.
const SettingID = "global"
