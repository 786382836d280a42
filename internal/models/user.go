// Package models содержит доменные структуры портала: пользователей, клиентов,
// тарифные планы и заказы, а также представления для страниц отчётов.
package models

import "time"

// Role роль пользователя портала.
type Role string

const (
	// RoleAdmin администратор, видит всех продавцов, клиентов и заказы.
	RoleAdmin Role = "admin"
	// RoleSeller продавец, работает только со своими клиентами и их заказами.
	RoleSeller Role = "seller"
)

// Valid сообщает, является ли роль одной из известных.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

// User представляет учётную запись администратора или продавца.
type User struct {
	ID           int64     // Идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	Role         Role      // admin или seller
	CreatedAt    time.Time // Дата создания
}

// Identity описывает аутентифицированного пользователя текущего запроса.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}
