package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/userdirectory/internal/data"
	"github.com/siahsang/userdirectory/internal/utils/databaseutils"
)

var (
	ErrDuplicateEmail    = xerrors.Message("Duplicate email")
	ErrDuplicateUsername = xerrors.Message("Duplicate username")
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

func (c *Core) CreateNewUser(ctx context.Context, user *data.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, date_joined, is_active
`
	args := []any{user.Username, user.Email, user.Password}
	_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*data.User, error) {
		if err := rows.Scan(&user.ID, &user.DateJoined, &user.IsActive); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, args...)

	if err != nil {
		return translateInsertError(err)
	}

	c.log.Info("User created", "user_id", user.ID, "username", user.Username)
	return nil
}

func (c *Core) GetAllUsers(ctx context.Context) ([]*data.User, error) {
	query := `
		SELECT id, username, email, password, date_joined, is_active
		FROM users
		ORDER BY id
	`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*data.User, error) {
		var user = &data.User{}

		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Password,
			&user.DateJoined,
			&user.IsActive,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	})

	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}

func translateInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case emailConstraint:
			return xerrors.New(ErrDuplicateEmail)
		case usernameConstraint:
			return xerrors.New(ErrDuplicateUsername)
		}
	}
	return xerrors.New(err)
}
