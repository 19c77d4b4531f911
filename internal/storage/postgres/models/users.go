package models

import (
	"context"
	"errors"
	"time"

	"cinemahub/proj/internal/domain/models"
	"cinemahub/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, email, full_name, password_hash, roles, verified, created_at, updated_at"

type UserModel struct {
	DB *pgxpool.Pool
}

// userRow keeps roles as text[] at the database edge.
type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash []byte    `db:"password_hash"`
	Roles        []string  `db:"roles"`
	Verified     bool      `db:"verified"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toUser() *models.User {
	roles := make([]models.Role, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, models.Role(role))
	}
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		Roles:        roles,
		Verified:     r.Verified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func rolesToStrings(roles []models.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

func (m *UserModel) Insert(
	ctx context.Context,
	email, fullName string,
	passwordHash []byte,
	roles []models.Role,
	verified bool,
) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (email, full_name, password_hash, roles, verified)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+userColumns,
		email, fullName, passwordHash, rolesToStrings(roles), verified,
	)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, mapMutationErr(err)
	}
	return row.toUser(), nil
}

func (m *UserModel) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.get(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.get(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (m *UserModel) get(ctx context.Context, query string, arg any) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, query, arg)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return row.toUser(), nil
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE users SET email = $1, full_name = $2, roles = $3, verified = $4, updated_at = now()
		WHERE id = $5 RETURNING `+userColumns,
		user.Email, user.FullName, rolesToStrings(user.Roles), user.Verified, user.ID,
	)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, mapMutationErr(err)
	}
	return row.toUser(), nil
}

func (m *UserModel) Delete(ctx context.Context, id uuid.UUID) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
