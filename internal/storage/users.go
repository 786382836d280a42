package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

const userColumns = `id, username, email, password_hash, role, created_at`

// CreateUser сохраняет пользователя и возвращает его с заполненными id и created_at.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users (username, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	err := s.q.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return user, nil
}

// GetUserByUsername возвращает пользователя по username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.q.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindByUsernameOrEmail возвращает пользователя, у которого username или email совпадает с identifier.
func (s *Storage) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	const op = "storage.FindByUsernameOrEmail"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username = $1 OR email = $1
			  ORDER BY (username = $1) DESC
			  LIMIT 1`
	u, err := scanUser(s.q.QueryRowContext(ctx, query, identifier))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// CountUsersByRole считает пользователей с ролью role.
func (s *Storage) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	const op = "storage.CountUsersByRole"

	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).
		Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListUsersByRole возвращает страницу пользователей с ролью role, упорядоченную по username.
func (s *Storage) ListUsersByRole(ctx context.Context, role models.Role, limit, offset int) ([]models.User, error) {
	const op = "storage.ListUsersByRole"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = $1
			  ORDER BY username
			  LIMIT $2 OFFSET $3`
	rows, err := s.q.QueryContext(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	u.Role = models.Role(role)
	return &u, nil
}
