package customers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylesphere/storefront/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Register creates the customer and their cart in one transaction so a
// customer never exists without a cart to add to.
func (r *Repository) Register(ctx context.Context, fullName, email, phone, password string) (*domain.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var taken bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)
	`, email).Scan(&taken)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	customer := &domain.Customer{
		ID:        uuid.New().String(),
		FirstName: firstName(fullName),
		LastName:  lastName(fullName),
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, string(hash), customer.CreatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO carts (id, customer_id, created_at)
		VALUES ($1, $2, $3)
	`, uuid.New().String(), customer.ID, customer.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return customer, nil
}

// Authenticate checks the password against the stored hash. Unknown
// email and wrong password both surface as ErrInvalidCredentials so the
// response does not leak which one failed.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer := &domain.Customer{Email: email}
	var hash string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, password_hash, created_at
		FROM customers
		WHERE email = $1
	`, email).Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Phone, &hash, &customer.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return customer, nil
}

// AddAddress stores a shipping address. The customer's first address
// becomes their default automatically.
func (r *Repository) AddAddress(ctx context.Context, address domain.Address) (string, error) {
	address.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (id, customer_id, street, city, postal_code, country, is_default)
		VALUES ($1, $2, $3, $4, $5, $6,
			NOT EXISTS (SELECT 1 FROM addresses WHERE customer_id = $2))
	`, address.ID, address.CustomerID, address.Street, address.City, address.PostalCode, address.Country)
	if err != nil {
		return "", err
	}

	return address.ID, nil
}

func firstName(fullName string) string {
	for i, r := range fullName {
		if r == ' ' {
			return fullName[:i]
		}
	}
	return fullName
}

func lastName(fullName string) string {
	for i, r := range fullName {
		if r == ' ' {
			return fullName[i+1:]
		}
	}
	return ""
}
