package user

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a user repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Upsert(ctx context.Context, u *User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, first_name, last_name, username, last_login)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name  = EXCLUDED.last_name,
		    username   = EXCLUDED.username,
		    last_login = NOW()
		RETURNING created_at, last_login`,
		u.ID, u.FirstName, nullable(u.LastName), nullable(u.Username),
	).Scan(&u.CreatedAt, &u.LastLogin)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	var lastName, username sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, username, created_at, last_login
		FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.FirstName, &lastName, &username, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	u.LastName = lastName.String
	u.Username = username.String
	return u, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
