package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

const customerColumns = `c.id, c.name, c.email, c.phone, c.address, c.seller_id, c.created_at`

// CreateCustomer сохраняет клиента продавца. Повтор email у того же продавца даёт ErrAlreadyExists.
func (s *Storage) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	const op = "storage.CreateCustomer"

	query := `INSERT INTO customers (name, email, phone, address, seller_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	err := s.q.QueryRowContext(ctx, query,
		c.Name, c.Email, nullString(c.Phone), nullString(c.Address), c.SellerID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return c, nil
}

// ListCustomersBySeller возвращает всех клиентов продавца.
func (s *Storage) ListCustomersBySeller(ctx context.Context, sellerID int64) ([]models.Customer, error) {
	const op = "storage.ListCustomersBySeller"

	query := `SELECT ` + customerColumns + `
			  FROM customers c
			  WHERE c.seller_id = $1
			  ORDER BY c.id`
	rows, err := s.q.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCustomerForSeller возвращает клиента, только если он принадлежит продавцу.
// Чужой и несуществующий клиент неразличимы: в обоих случаях ErrNotFound.
func (s *Storage) GetCustomerForSeller(ctx context.Context, sellerID, customerID int64) (*models.Customer, error) {
	const op = "storage.GetCustomerForSeller"

	query := `SELECT ` + customerColumns + `
			  FROM customers c
			  WHERE c.id = $1 AND c.seller_id = $2`
	c, err := scanCustomer(s.q.QueryRowContext(ctx, query, customerID, sellerID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &c, nil
}

// CountCustomersBySeller считает клиентов продавца.
func (s *Storage) CountCustomersBySeller(ctx context.Context, sellerID int64) (int, error) {
	const op = "storage.CountCustomersBySeller"

	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE seller_id = $1`, sellerID).
		Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountCustomers считает всех клиентов.
func (s *Storage) CountCustomers(ctx context.Context) (int, error) {
	const op = "storage.CountCustomers"

	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListAllCustomers возвращает всех клиентов с именами продавцов.
func (s *Storage) ListAllCustomers(ctx context.Context) ([]models.CustomerWithSeller, error) {
	const op = "storage.ListAllCustomers"

	query := `SELECT ` + customerColumns + `, u.username
			  FROM customers c
			  JOIN users u ON c.seller_id = u.id
			  ORDER BY u.username, c.id`
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.CustomerWithSeller, 0)
	for rows.Next() {
		var item models.CustomerWithSeller
		var phone, address sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &phone, &address,
			&item.SellerID, &item.CreatedAt, &item.SellerUsername); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Phone, item.Address = phone.String, address.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	var phone, address sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &address, &c.SellerID, &c.CreatedAt); err != nil {
		return models.Customer{}, err
	}
	c.Phone, c.Address = phone.String, address.String
	return c, nil
}
