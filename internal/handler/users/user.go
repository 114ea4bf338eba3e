package users

import (
	"context"
	"net/http"

	"back2u/internal/api"
	"back2u/internal/asset"
	"back2u/internal/middleware"
	"back2u/internal/model"

	"github.com/labstack/echo/v4"
)

// Accounts is the account service used by the user handlers.
type Accounts interface {
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, p model.ProfilePatch, avatar *asset.File) (*model.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// @Summary     Register
// @Description Creates an account. The email is stored lower-cased and must be unique.
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreateUserRequest true "New account"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Router      /users [post]
func CreateUserHandler(svc Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, err)
		}
		if _, err := svc.Register(c.Request().Context(), model.Registration{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		}); err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusCreated, api.MessageResponse{Success: true, Message: "User registered successfully"})
	}
}

// @Summary     Get my profile
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /me [get]
func GetMeHandler(svc Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := svc.Profile(c.Request().Context(), middleware.UserID(c))
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.UserResponse{Success: true, User: u})
	}
}

// @Summary     Update my profile
// @Description Partial update. Only the fields that are sent change. An "avatar" file replaces the avatar (max 2MB, JPEG or PNG).
// @Tags        users
// @Accept      multipart/form-data
// @Accept      json
// @Produce     json
// @Param       first_name formData string false "First name"
// @Param       last_name  formData string false "Last name"
// @Param       bio        formData string false "Bio"
// @Param       instagram  formData string false "Instagram"
// @Param       linkedin   formData string false "LinkedIn"
// @Param       facebook   formData string false "Facebook"
// @Param       github     formData string false "GitHub"
// @Param       avatar     formData file   false "Avatar image"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.HTTPError
// @Failure     401 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /me [put]
func UpdateMeHandler(svc Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch model.ProfilePatch
		if api.IsJSON(c) {
			if err := c.Bind(&patch); err != nil {
				return api.BadRequest(c, "invalid request body")
			}
		} else {
			form, err := c.FormParams()
			if err != nil {
				return api.BadRequest(c, "invalid form data")
			}
			patch = model.ProfilePatch{
				FirstName: api.Optional(form, "first_name"),
				LastName:  api.Optional(form, "last_name"),
				Bio:       api.Optional(form, "bio"),
				Instagram: api.Optional(form, "instagram"),
				LinkedIn:  api.Optional(form, "linkedin"),
				Facebook:  api.Optional(form, "facebook"),
				GitHub:    api.Optional(form, "github"),
			}
		}

		avatar, err := api.FormFile(c, "avatar", asset.MaxAvatarSize)
		if err != nil {
			return api.Fail(c, err)
		}

		u, err := svc.UpdateProfile(c.Request().Context(), middleware.UserID(c), patch, avatar)
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.UserResponse{Success: true, Message: "Profile updated successfully", User: u})
	}
}

// @Summary     Change my password
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.UpdateMyPasswordRequest true "Current and new password"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.HTTPError
// @Failure     401  {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /me/password [put]
func UpdateMyPasswordHandler(svc Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateMyPasswordRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, err)
		}
		if err := svc.ChangePassword(c.Request().Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "Password updated successfully"})
	}
}
