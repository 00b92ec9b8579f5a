package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

const userColumns = `id, first_name, last_name, email, password_hash, admin, super_admin, created_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Admin,
		&u.SuperAdmin,
		&u.CreatedAt,
	); err != nil {
		return domain.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, admin, super_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.Exec(
		ctx,
		cmd,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Admin,
		user.SuperAdmin,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, translateErr(err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, translateErr(err)
	}
	return u, nil
}

func (s *Store) UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName *string) (domain.User, error) {
	var sets []string
	var args []any

	if firstName != nil {
		args = append(args, *firstName)
		sets = append(sets, fmt.Sprintf("first_name = $%d", len(args)))
	}
	if lastName != nil {
		args = append(args, *lastName)
		sets = append(sets, fmt.Sprintf("last_name = $%d", len(args)))
	}
	if len(sets) == 0 {
		return s.GetUser(ctx, id)
	}

	args = append(args, id)
	cmd := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, cmd, args...)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, storage.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Store) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SetUserAdmin(ctx context.Context, id uuid.UUID, admin bool) (domain.User, error) {
	tag, err := s.db.Exec(ctx, `UPDATE users SET admin = $1 WHERE id = $2`, admin, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to update admin flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, storage.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
