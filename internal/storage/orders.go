package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

const orderViewQuery = `SELECT o.id, o.customer_id, o.plan_id, o.start_date, o.end_date, o.status,
			  o.created_at, o.created_by, c.name, p.name, s.username, cr.username
			  FROM orders o
			  JOIN customers c ON o.customer_id = c.id
			  JOIN subscription_plans p ON o.plan_id = p.id
			  JOIN users s ON c.seller_id = s.id
			  JOIN users cr ON o.created_by = cr.id`

// CreateOrderForSeller сохраняет заказ, только если клиент принадлежит продавцу sellerID.
// Проверка владения и вставка выполняются одним запросом. Чужой клиент даёт ErrNotFound.
func (s *Storage) CreateOrderForSeller(ctx context.Context, sellerID int64, o models.Order) (models.Order, error) {
	const op = "storage.CreateOrderForSeller"

	query := `INSERT INTO orders (customer_id, plan_id, start_date, end_date, status, created_by)
			  SELECT c.id, $2::bigint, $3::date, $4::date, $5::varchar, $6::bigint
			  FROM customers c
			  WHERE c.id = $1::bigint AND c.seller_id = $7::bigint
			  RETURNING id, created_at`
	err := s.q.QueryRowContext(ctx, query,
		o.CustomerID, o.PlanID, o.StartDate, nullTime(o), string(o.Status), o.CreatedBy, sellerID).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return o, nil
}

// CountOrdersBySeller считает заказы клиентов продавца.
func (s *Storage) CountOrdersBySeller(ctx context.Context, sellerID int64) (int, error) {
	const op = "storage.CountOrdersBySeller"

	query := `SELECT COUNT(*)
			  FROM orders o
			  JOIN customers c ON o.customer_id = c.id
			  WHERE c.seller_id = $1`
	var count int
	if err := s.q.QueryRowContext(ctx, query, sellerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListOrdersBySeller возвращает заказы клиентов продавца, новые первыми.
// limit <= 0 означает без ограничения.
func (s *Storage) ListOrdersBySeller(ctx context.Context, sellerID int64, limit int) ([]models.OrderView, error) {
	const op = "storage.ListOrdersBySeller"

	query := orderViewQuery + `
			  WHERE c.seller_id = $1
			  ORDER BY o.created_at DESC, o.id DESC
			  LIMIT $2`
	rows, err := s.q.QueryContext(ctx, query, sellerID, nullLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := scanOrderViews(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountOrders считает все заказы.
func (s *Storage) CountOrders(ctx context.Context) (int, error) {
	const op = "storage.CountOrders"

	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListAllOrders возвращает все заказы, новые первыми. limit <= 0 означает без ограничения.
func (s *Storage) ListAllOrders(ctx context.Context, limit int) ([]models.OrderView, error) {
	const op = "storage.ListAllOrders"

	query := orderViewQuery + `
			  ORDER BY o.created_at DESC, o.id DESC
			  LIMIT $1`
	rows, err := s.q.QueryContext(ctx, query, nullLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := scanOrderViews(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkExpired переводит заказы ids в статус Expired. Уже истёкшие не трогаются.
// Возвращает число обновлённых строк.
func (s *Storage) MarkExpired(ctx context.Context, ids []int64) (int64, error) {
	const op = "storage.MarkExpired"

	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE orders SET status = $1 WHERE id = ANY($2) AND status <> $1`
	res, err := s.q.ExecContext(ctx, query, string(models.StatusExpired), ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func scanOrderViews(rows *sql.Rows) ([]models.OrderView, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.OrderView, 0)
	for rows.Next() {
		var v models.OrderView
		var status string
		var end sql.NullTime
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.PlanID, &v.StartDate, &end, &status,
			&v.CreatedAt, &v.CreatedBy, &v.CustomerName, &v.PlanName,
			&v.SellerUsername, &v.CreatorUsername); err != nil {
			return nil, err
		}
		v.Status = models.OrderStatus(status)
		if end.Valid {
			v.EndDate = end.Time
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func nullTime(o models.Order) sql.NullTime {
	return sql.NullTime{Time: o.EndDate, Valid: !o.EndDate.IsZero()}
}
