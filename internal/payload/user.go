package payload

import "github.com/becopy/becopy-api/internal/model"

type UpdateProfileRequest struct {
	Name           *string               `json:"name"`
	Country        *string               `json:"country"`
	AdditionalInfo *model.AdditionalInfo `json:"additionalInfo"`
}
