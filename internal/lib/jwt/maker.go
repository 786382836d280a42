// Package jwt реализует выпуск и разбор подписанных токенов сессии портала.
//
// Токен кладётся в cookie после входа и хранит идентификатор, имя и роль пользователя.
package jwt

import (
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Maker описывает выпуск и разбор токенов сессии.
type Maker interface {
	GenerateToken(identity models.Identity) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl подписывает токены HS256 секретным ключом приложения.
type MakerImpl struct {
	secretKey string        // Секретный ключ (SECRET_KEY)
	issuer    string        // Значение claim iss
	tokenTTL  time.Duration // Время жизни сессии
}

// NewJWTMaker создаёт MakerImpl.
func NewJWTMaker(secretKey, issuer string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		issuer:    issuer,
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
