// Package lifecycle вычисляет дату окончания заказа и приводит статус в соответствие с текущей датой.
//
// Статус переходит только Active -> Expired. Pending зарезервирован и автоматически не выставляется.
package lifecycle

import (
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// ComputeEndDate выставляет order.EndDate = StartDate + plan.DurationDays.
// Ничего не делает, если дата начала не задана, план отсутствует или длительность не положительна.
func ComputeEndDate(order *models.Order, plan *models.Plan) {
	if order == nil || plan == nil || order.StartDate.IsZero() || plan.DurationDays <= 0 {
		return
	}
	order.EndDate = order.StartDate.AddDate(0, 0, plan.DurationDays)
}

// RefreshStatus помечает заказ как Expired, если now позже даты окончания.
// Возвращает true, если статус изменился. Повторный вызов ничего не меняет.
func RefreshStatus(order *models.Order, now time.Time) bool {
	if order == nil || order.EndDate.IsZero() || order.Status == models.StatusExpired {
		return false
	}
	if now.After(order.EndDate) {
		order.Status = models.StatusExpired
		return true
	}
	return false
}

// RefreshAll обновляет статусы orders и возвращает id заказов, перешедших в Expired.
func RefreshAll(orders []models.OrderView, now time.Time) []int64 {
	var changed []int64
	for i := range orders {
		if RefreshStatus(&orders[i].Order, now) {
			changed = append(changed, orders[i].ID)
		}
	}
	return changed
}
