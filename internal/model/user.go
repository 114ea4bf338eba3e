// File: internal/model/user.go
package model

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Bio          string    `db:"bio" json:"bio"`
	Instagram    string    `db:"instagram" json:"instagram"`
	LinkedIn     string    `db:"linkedin" json:"linkedin"`
	Facebook     string    `db:"facebook" json:"facebook"`
	GitHub       string    `db:"github" json:"github"`
	Avatar       string    `db:"avatar" json:"avatar"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Registration is the input of a new account.
type Registration struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,lostfound_email"`
	Password  string `json:"password" form:"password" validate:"required,min=6,max=72"`
}

// ProfilePatch lists the display fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfilePatch struct {
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=50"`
	Bio       *string `json:"bio" validate:"omitnil,max=500"`
	Instagram *string `json:"instagram" validate:"omitnil,max=200"`
	LinkedIn  *string `json:"linkedin" validate:"omitnil,max=200"`
	Facebook  *string `json:"facebook" validate:"omitnil,max=200"`
	GitHub    *string `json:"github" validate:"omitnil,max=200"`
	Avatar    *string `json:"-"`
}
