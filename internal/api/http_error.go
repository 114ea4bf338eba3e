package api

// swagger:model api.HTTPError
type HTTPError struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"item not found"`
}
