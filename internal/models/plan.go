package models

import "github.com/shopspring/decimal"

// Plan тарифный план подписки. Глобальный справочник, не принадлежит продавцу.
type Plan struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal // неотрицательная цена
	DurationDays int             // длительность в днях, > 0
}
