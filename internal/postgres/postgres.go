package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/pkg/logger"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func (p *Postgres) CreateUser(ctx context.Context, email, hashedPassword string) (string, error) {
	id := uuid.NewString()

	_, err := p.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password) VALUES ($1, $2, $3)",
		id, email, hashedPassword,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logger.Log.Warn("user already exists", logger.String("email", email))
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (p *Postgres) User(ctx context.Context, email string) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, email, password, registered_at FROM users WHERE email = $1", email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

func (p *Postgres) CreateInvoice(ctx context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) (string, error) {
	id := uuid.NewString()

	_, err := p.DB.ExecContext(ctx,
		"INSERT INTO invoices (id, customer_id, amount, status, date) VALUES ($1, $2, $3, $4, $5)",
		id, customerID, amountCents, string(status), date,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			logger.Log.Warn("invoice references unknown customer", logger.String("customer_id", customerID))
			return "", domain.ErrCustomerNotFound
		}
		return "", fmt.Errorf("error creating invoice: %w", err)
	}

	return id, nil
}

// UpdateInvoice rewrites the mutable columns only; date is never touched.
func (p *Postgres) UpdateInvoice(ctx context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	_, err := p.DB.ExecContext(ctx,
		"UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4",
		customerID, amountCents, string(status), id,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			logger.Log.Warn("invoice references unknown customer", logger.String("customer_id", customerID))
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("error updating invoice: %w", err)
	}

	return nil
}

// DeleteInvoice is idempotent: deleting an id that is already gone is not an error.
func (p *Postgres) DeleteInvoice(ctx context.Context, id string) error {
	_, err := p.DB.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting invoice: %w", err)
	}

	return nil
}

func (p *Postgres) Invoices(ctx context.Context, query string, limit, offset int) ([]domain.InvoiceRow, error) {
	pattern := "%" + query + "%"

	rows, err := p.DB.QueryContext(ctx, `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date::text,
		       customers.name, customers.email
		FROM invoices
		JOIN customers ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1
		   OR customers.email ILIKE $1
		   OR invoices.amount::text ILIKE $1
		   OR invoices.date::text ILIKE $1
		   OR invoices.status ILIKE $1
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching invoices: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var invoices []domain.InvoiceRow
	for rows.Next() {
		var inv domain.InvoiceRow
		err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date, &inv.CustomerName, &inv.CustomerEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over invoices: %w", err)
	}

	return invoices, nil
}

func (p *Postgres) InvoiceCount(ctx context.Context, query string) (int, error) {
	pattern := "%" + query + "%"

	var count int
	err := p.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1
		   OR customers.email ILIKE $1
		   OR invoices.amount::text ILIKE $1
		   OR invoices.date::text ILIKE $1
		   OR invoices.status ILIKE $1`,
		pattern,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting invoices: %w", err)
	}

	return count, nil
}

func (p *Postgres) Customers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := p.DB.QueryContext(ctx, "SELECT id, name, email FROM customers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("error fetching customers: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over customers: %w", err)
	}

	return customers, nil
}
