package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"back2u/internal/asset"
	"back2u/internal/common"
	"back2u/internal/database"
	"back2u/internal/model"
	"back2u/internal/store"

	"github.com/google/uuid"
)

var (
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	getUserByEmail     = store.GetUserByEmail
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	newID              = uuid.NewString
)

var (
	errEmailTaken      = common.Newf(common.ErrConflict, "email already exists")
	errBadCredentials  = common.Newf(common.ErrInvalidCredentials, "incorrect email or password")
	errWrongPassword   = common.Newf(common.ErrValidation, "current password is incorrect")
	errUserNotFound    = common.Newf(common.ErrNotFound, "user not found")
	errAvatarTooLarge  = common.Newf(common.ErrValidation, "avatar must be at most 2MB")
	errPasswordMissing = common.Newf(common.ErrValidation, "current password and new password are required")
	errPasswordShort   = common.Newf(common.ErrValidation, "password must be at least 6 characters")
	errPasswordLong    = common.Newf(common.ErrValidation, "password must be at most %d characters", MaxPasswordBytes)
)

// Credentials owns user accounts: registration, login, password and profile
// changes.
type Credentials struct {
	DB       database.Querier
	Sessions *Sessions
	Assets   asset.Host
	Cost     int
}

// Register creates an account. The email is trimmed and lower-cased so
// uniqueness is case-insensitive.
func (c *Credentials) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if err := validateStruct(reg); err != nil {
		return nil, err
	}
	if len(reg.Password) > MaxPasswordBytes {
		return nil, errPasswordLong
	}

	_, err := getUserByEmail(ctx, c.DB, reg.Email)
	switch {
	case err == nil:
		return nil, errEmailTaken
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	hash, err := HashPassword(reg.Password, c.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := createUser(ctx, c.DB, &model.User{
		ID:           newID(),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, common.ErrConflict) {
		return nil, errEmailTaken
	}
	return u, err
}

// Authenticate checks the credentials and opens a session. Unknown emails
// and wrong passwords fail identically.
func (c *Credentials) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", common.Newf(common.ErrValidation, "email and password are required")
	}
	u, err := getUserByEmail(ctx, c.DB, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, "", errBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, "", errBadCredentials
	}
	token, err := c.Sessions.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return u, token, nil
}

func (c *Credentials) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return errPasswordMissing
	}
	u, err := c.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := ComparePassword(u.PasswordHash, current); err != nil {
		return errWrongPassword
	}
	if len(next) < 6 {
		return errPasswordShort
	}
	if len(next) > MaxPasswordBytes {
		return errPasswordLong
	}
	hash, err := HashPassword(next, c.Cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return updateUserPassword(ctx, c.DB, userID, hash)
}

// UpdateProfile applies p and, when avatar is given, replaces the avatar
// with a normalised upload.
func (c *Credentials) UpdateProfile(ctx context.Context, userID string, p model.ProfilePatch, avatar *asset.File) (*model.User, error) {
	p = model.ProfilePatch{
		FirstName: trimPtr(p.FirstName),
		LastName:  trimPtr(p.LastName),
		Bio:       trimPtr(p.Bio),
		Instagram: trimPtr(p.Instagram),
		LinkedIn:  trimPtr(p.LinkedIn),
		Facebook:  trimPtr(p.Facebook),
		GitHub:    trimPtr(p.GitHub),
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if avatar != nil {
		if len(avatar.Data) > asset.MaxAvatarSize {
			return nil, errAvatarTooLarge
		}
		url, err := upload(ctx, c.Assets, *avatar, asset.NormalizeAvatar, asset.FolderAvatars)
		if err != nil {
			return nil, err
		}
		p.Avatar = &url
	}
	u, err := updateUserProfile(ctx, c.DB, userID, p)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errUserNotFound
	}
	return u, err
}

func (c *Credentials) Profile(ctx context.Context, userID string) (*model.User, error) {
	u, err := getUserByID(ctx, c.DB, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errUserNotFound
	}
	return u, err
}

// upload normalises f and stores it on host. Host failures always surface
// as ErrUpload.
func upload(ctx context.Context, host asset.Host, f asset.File, normalize func(asset.File) (asset.File, error), folder string) (string, error) {
	if host == nil {
		return "", fmt.Errorf("%w: no asset host configured", common.ErrUpload)
	}
	img, err := normalize(f)
	if err != nil {
		return "", err
	}
	url, err := host.Upload(ctx, img, folder)
	if err != nil {
		if !errors.Is(err, common.ErrUpload) {
			err = fmt.Errorf("%w: %v", common.ErrUpload, err)
		}
		return "", err
	}
	return url, nil
}
