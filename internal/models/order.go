package models

import "time"

// OrderStatus статус заказа.
type OrderStatus string

const (
	// StatusActive заказ действует.
	StatusActive OrderStatus = "Active"
	// StatusExpired срок действия заказа истёк.
	StatusExpired OrderStatus = "Expired"
	// StatusPending зарезервирован под ручной процесс, автоматически не выставляется.
	StatusPending OrderStatus = "Pending"
)

// DateLayout формат даты начала заказа в формах.
const DateLayout = "2006-01-02"

// Order связывает клиента с тарифным планом.
// EndDate вычисляется один раз при создании как StartDate + Plan.DurationDays.
type Order struct {
	ID         int64
	CustomerID int64
	PlanID     int64
	StartDate  time.Time
	EndDate    time.Time
	Status     OrderStatus
	CreatedAt  time.Time
	CreatedBy  int64
}

// OrderView заказ с отображаемыми полями связанных записей.
type OrderView struct {
	Order
	CustomerName    string
	PlanName        string
	SellerUsername  string // владелец клиента
	CreatorUsername string // автор заказа (created_by)
}

// NewOrder данные формы создания заказа в сыром виде.
// Идентификаторы и дата разбираются сервисом, чтобы сообщить, какое поле неверно.
type NewOrder struct {
	CustomerID string `validate:"required"`
	PlanID     string `validate:"required"`
	StartDate  string `validate:"required"`
}
