package readstore

import (
	"context"

	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/pgconv"
	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{db: pool}
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, role, is_active
FROM admin_users
WHERE email = $1
`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserCredentialView, error) {
	var view queries.UserCredentialView
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).
		Scan(&view.ID, &view.Email, &view.PasswordHash, &view.Role, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin user by email", err)
	}
	return &view, nil
}

const findUserByIDSQL = `
SELECT id, email, role, is_active, last_login
FROM admin_users
WHERE id = $1
`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view      queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).
		Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin user by ID", err)
	}

	view.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &view, nil
}
