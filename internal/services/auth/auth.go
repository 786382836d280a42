// Package auth реализует вход в портал и проверку токенов сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/password"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/storage"
)

// ErrInvalidCredentials неизвестный пользователь или неверный пароль. Причина наружу не раскрывается.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для поиска пользователей при входе.
type UserRepository interface {
	// FindByUsernameOrEmail возвращает пользователя по имени или email.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
}

// AuthService отвечает за вход и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	failures prometheus.Counter
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService. failures считает неудачные попытки входа.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, failures prometheus.Counter, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		failures: failures,
		log:      log,
	}
}

// Login проверяет пароль пользователя, найденного по имени или email, и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (string, models.Identity, error) {
	const op = "auth.Login"

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || rawPassword == "" {
		s.failures.Inc()
		return "", models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, storage.ErrNotFound) {
		s.failures.Inc()
		return "", models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		s.failures.Inc()
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is unusable", slog.String("op", op), slog.Int64("user_id", user.ID))
		}
		return "", models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	identity := models.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
	token, err := s.jwtMaker.GenerateToken(identity)
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, identity, nil
}

// ValidateToken проверяет JWT и возвращает пользователя сессии.
func (s *AuthService) ValidateToken(_ context.Context, token string) (models.Identity, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	identity, err := claims.Identity()
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}
