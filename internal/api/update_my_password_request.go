package api

// swagger:model api.UpdateMyPasswordRequest
type UpdateMyPasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required" example:"secret1"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required" example:"secret2"`
}
