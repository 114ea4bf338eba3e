package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required" example:"Alice"`
	LastName  string `json:"last_name" form:"last_name" validate:"required" example:"Smith"`
	Email     string `json:"email" form:"email" validate:"required,lostfound_email" example:"alice@example.com"`
	Password  string `json:"password" form:"password" validate:"required,min=6,max=72" example:"secret1"`
}
