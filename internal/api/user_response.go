package api

import "back2u/internal/model"

// swagger:model api.UserResponse
type UserResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Profile updated successfully"`
	User    *model.User `json:"user"`
}
