package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kimdaedan/exhibition-backend/internal/models"
)

type KaryaRepository interface {
	Create(ctx context.Context, karya *models.Karya) error
	GetByID(ctx context.Context, id string) (*models.Karya, error)
	List(ctx context.Context, filter models.KaryaFilter) ([]models.Karya, error)
	UpdateStatus(ctx context.Context, id string, status models.KaryaStatus) error
	Delete(ctx context.Context, id string) error
}

type karyaRepository struct {
	*PostgresRepository
}

func NewKaryaRepository(db *sql.DB, driver string, logger zerolog.Logger) KaryaRepository {
	return &karyaRepository{
		PostgresRepository: NewPostgresRepository(db, driver, logger),
	}
}

const karyaColumns = `id, title, prodi, nama, nim, description, upload_type, file_path, youtube_url, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKarya(row rowScanner) (*models.Karya, error) {
	var (
		karya      models.Karya
		filePath   sql.NullString
		youtubeURL sql.NullString
	)

	err := row.Scan(
		&karya.ID,
		&karya.Title,
		&karya.Prodi,
		&karya.Nama,
		&karya.NIM,
		&karya.Description,
		&karya.UploadType,
		&filePath,
		&youtubeURL,
		&karya.Status,
		&karya.CreatedAt,
		&karya.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	karya.FilePath = stringPtr(filePath)
	karya.YoutubeURL = stringPtr(youtubeURL)
	return &karya, nil
}

func (r *karyaRepository) Create(ctx context.Context, karya *models.Karya) error {
	query := r.rebind(`
		INSERT INTO karya (` + karyaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		karya.ID,
		karya.Title,
		karya.Prodi,
		karya.Nama,
		karya.NIM,
		karya.Description,
		string(karya.UploadType),
		nullString(karya.FilePath),
		nullString(karya.YoutubeURL),
		string(karya.Status),
		karya.CreatedAt,
		karya.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *karyaRepository) GetByID(ctx context.Context, id string) (*models.Karya, error) {
	query := r.rebind(`SELECT ` + karyaColumns + ` FROM karya WHERE id = ?`)

	karya, err := scanKarya(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return karya, err
}

func (r *karyaRepository) List(ctx context.Context, filter models.KaryaFilter) ([]models.Karya, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Prodi != "" {
		conditions = append(conditions, "prodi = ?")
		args = append(args, filter.Prodi)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + karyaColumns + ` FROM karya`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	karyas := make([]models.Karya, 0)
	for rows.Next() {
		karya, err := scanKarya(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan karya: %w", err)
		}
		karyas = append(karyas, *karya)
	}

	return karyas, rows.Err()
}

func (r *karyaRepository) UpdateStatus(ctx context.Context, id string, status models.KaryaStatus) error {
	query := r.rebind(`UPDATE karya SET status = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *karyaRepository) Delete(ctx context.Context, id string) error {
	query := r.rebind(`DELETE FROM karya WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
