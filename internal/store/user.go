package store

import (
	"context"
	"errors"
	"fmt"

	"back2u/internal/common"
	"back2u/internal/database"
	"back2u/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, first_name, last_name, email, password_hash, bio,
	instagram, linkedin, facebook, github, avatar, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.Instagram,
		&u.LinkedIn,
		&u.Facebook,
		&u.GitHub,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

// storeErr converts driver errors into the common kinds. Unique violations
// become ErrConflict and a missing row becomes ErrNotFound.
func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, common.ErrConflict)
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrStore, err)
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, storeErr("CreateUser", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, storeErr("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail matches case-insensitively.
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	))
	if err != nil {
		return nil, storeErr("GetUserByEmail", err)
	}
	return u, nil
}

// UpdateUserProfile applies the non-nil fields of p and returns the stored user.
func UpdateUserProfile(ctx context.Context, db database.Querier, userID string, p model.ProfilePatch) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			bio        = COALESCE($4, bio),
			instagram  = COALESCE($5, instagram),
			linkedin   = COALESCE($6, linkedin),
			facebook   = COALESCE($7, facebook),
			github     = COALESCE($8, github),
			avatar     = COALESCE($9, avatar),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
		p.FirstName,
		p.LastName,
		p.Bio,
		p.Instagram,
		p.LinkedIn,
		p.Facebook,
		p.GitHub,
		p.Avatar,
	))
	if err != nil {
		return nil, storeErr("UpdateUserProfile", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.Querier, userID string, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return storeErr("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", common.ErrNotFound)
	}
	return nil
}
