package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// ListPlans возвращает все тарифные планы по возрастанию цены.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "storage.ListPlans"

	query := `SELECT id, name, description, price, duration_days
			  FROM subscription_plans
			  ORDER BY price, id`
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает план по id.
func (s *Storage) GetPlan(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.GetPlan"

	query := `SELECT id, name, description, price, duration_days
			  FROM subscription_plans
			  WHERE id = $1`
	p, err := scanPlan(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &p, nil
}

// CreatePlan добавляет тарифный план. Повтор имени даёт ErrAlreadyExists.
func (s *Storage) CreatePlan(ctx context.Context, p models.Plan) (models.Plan, error) {
	const op = "storage.CreatePlan"

	query := `INSERT INTO subscription_plans (name, description, price, duration_days)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	err := s.q.QueryRowContext(ctx, query, p.Name, nullString(p.Description), p.Price, p.DurationDays).
		Scan(&p.ID)
	if err != nil {
		return models.Plan{}, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return p, nil
}

func scanPlan(row rowScanner) (models.Plan, error) {
	var p models.Plan
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.DurationDays); err != nil {
		return models.Plan{}, err
	}
	p.Description = description.String
	return p, nil
}
