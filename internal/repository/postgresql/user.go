package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, tenant_id, employee_id, employee_name, email, COALESCE(password_hash, ''), role, created_at, updated_at`

func scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID,
		&u.TenantID,
		&u.EmployeeID,
		&u.EmployeeName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, err
}

// GetByEmail implements auth.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByID implements auth.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}
