package repository

import (
	"context"
	"time"

	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

func (r *Repository) CreateAccount(account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{account.Username, account.Email, account.PasswordHash, account.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&account.ID, &account.CreatedAt, &account.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAccountByEmail(email string) (*domain.Account, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, version
		FROM accounts WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	account := &domain.Account{
		Email: email,
	}

	dst := []any{&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt, &account.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *Repository) GetAccountByID(id int64) (*domain.Account, error) {
	query := `
		SELECT username, email, password_hash, role, created_at, version
		FROM accounts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	account := &domain.Account{
		ID: id,
	}

	dst := []any{&account.Username, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt, &account.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *Repository) GetAllAccounts() ([]*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, role, created_at, version FROM accounts
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		dst := []any{&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt, &account.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}
