package dto

import "github.com/painterconnectory/backend/internal/models"

// PainterResponse is the public directory view of a painter profile.
type PainterResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Avatar      *string             `json:"avatar,omitempty"`
	Location    *models.Location    `json:"location,omitempty"`
	CompanyInfo *models.CompanyInfo `json:"companyInfo,omitempty"`
	Pro         bool                `json:"pro"`
}
