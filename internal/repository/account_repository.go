package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByNIM(ctx context.Context, nim string) (*models.Account, error)
	ExistsByNIM(ctx context.Context, nim string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type accountRepository struct {
	*PostgresRepository
}

func NewAccountRepository(db *sql.DB, driver string, logger zerolog.Logger) AccountRepository {
	return &accountRepository{
		PostgresRepository: NewPostgresRepository(db, driver, logger),
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := r.rebind(`
		INSERT INTO accounts (id, nim, nama, prodi, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.NIM,
		account.Nama,
		account.Prodi,
		account.PasswordHash,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("nim", account.NIM).Msg("Duplicate NIM rejected by store")
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *accountRepository) GetByNIM(ctx context.Context, nim string) (*models.Account, error) {
	query := r.rebind(`
		SELECT id, nim, nama, prodi, password_hash, created_at
		FROM accounts
		WHERE nim = ?
	`)

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, nim).Scan(
		&account.ID,
		&account.NIM,
		&account.Nama,
		&account.Prodi,
		&account.PasswordHash,
		&account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return account, err
}

func (r *accountRepository) ExistsByNIM(ctx context.Context, nim string) (bool, error) {
	query := r.rebind(`SELECT COUNT(*) FROM accounts WHERE nim = ?`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, nim).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *accountRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}
