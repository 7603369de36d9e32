package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo is the Postgres implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts the identity or refreshes its profile columns on conflict.
// Timestamps are owned by the database.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const q = `
INSERT INTO users (id, email, full_name, given_name, family_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (id) DO UPDATE SET
    email       = EXCLUDED.email,
    full_name   = EXCLUDED.full_name,
    given_name  = EXCLUDED.given_name,
    family_name = EXCLUDED.family_name,
    picture_url = EXCLUDED.picture_url,
    updated_at  = now()`
	_, err := r.DB.ExecContext(ctx, q,
		user.ID,
		user.Email,
		textOrNull(user.FullName),
		textOrNull(user.GivenName),
		textOrNull(user.FamilyName),
		textOrNull(user.PictureURL),
	)
	return err
}

// GetByID loads one user by primary key.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const q = `
SELECT id, email, full_name, given_name, family_name, picture_url, created_at, updated_at
FROM users
WHERE id = $1`

	var (
		user       User
		fullName   sql.NullString
		givenName  sql.NullString
		familyName sql.NullString
		pictureURL sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&givenName,
		&familyName,
		&pictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}

	user.FullName = fullName.String
	user.GivenName = givenName.String
	user.FamilyName = familyName.String
	user.PictureURL = pictureURL.String
	return user, nil
}

// textOrNull maps empty optional profile fields to SQL NULL.
func textOrNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
