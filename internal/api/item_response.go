package api

import "back2u/internal/model"

// swagger:model api.ItemResponse
type ItemResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Item created successfully"`
	Item    *model.Item `json:"item"`
}

// swagger:model api.ItemListResponse
type ItemListResponse struct {
	Success bool         `json:"success" example:"true"`
	Items   []model.Item `json:"items"`
}

// swagger:model api.DashboardResponse
type DashboardResponse struct {
	Success bool                 `json:"success" example:"true"`
	Stats   model.DashboardStats `json:"stats"`
}
