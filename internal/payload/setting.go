package payload

import "github.com/becopy/becopy-api/internal/model"

type UpdateSettingRequest struct {
	IsAddCode  bool                             `json:"isAddCode"`
	IsPostJob  bool                             `json:"isPostJob"`
	IsApplyJob bool                             `json:"isApplyJob"`
	IsJobs     bool                             `json:"isJobs"`
	Languages  map[string]model.LanguageSetting `json:"languages"`
}
