package repository

import (
	"context"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (r *Repository) GetCustomerByID(id int64) (*domain.Customer, error) {
	query := `
		SELECT name, email, phone, address, created_at, updated_at, version
		FROM customers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	customer := &domain.Customer{
		ID: id,
	}

	dst := []any{&customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt, &customer.UpdatedAt, &customer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *Repository) GetAllCustomers() ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at, updated_at, version
		FROM customers ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer := &domain.Customer{}
		dst := []any{&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt, &customer.UpdatedAt, &customer.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *Repository) CreateCustomer(customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{customer.Name, customer.Email, customer.Phone, customer.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt, &customer.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCustomer(customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET
			name = $1,
			email = $2,
			phone = $3,
			address = $4,
			updated_at = now(),
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{customer.Name, customer.Email, customer.Phone, customer.Address, customer.ID, customer.Version}
	dst := []any{&customer.CreatedAt, &customer.UpdatedAt, &customer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCustomer(id int64) error {
	query := `
		DELETE FROM customers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
