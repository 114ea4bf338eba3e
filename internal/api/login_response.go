package api

import "back2u/internal/model"

// swagger:model api.LoginResponse
type LoginResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Login successful"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}
