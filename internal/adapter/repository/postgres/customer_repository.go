package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"name": customer.Name,
	})

	const query = `
INSERT INTO customers (name)
VALUES ($1)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, customer.Name).Scan(&customer.ID, &customer.CreatedAt); err != nil {
		logger.Error("customer repository create failed", err, logger.Fields{
			"name": customer.Name,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	logger.Info("customer repository create success", logger.Fields{
		"customerId": customer.ID,
	})

	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `
SELECT id, name, created_at
FROM customers
WHERE id = $1`

	var customer domain.Customer
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": id,
			})
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": id,
		})
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM customers
	WHERE id = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		logger.Error("customer repository exists check failed", err, logger.Fields{
			"customerId": id,
		})
		return false, fmt.Errorf("check customer exists: %w", err)
	}

	return exists, nil
}
