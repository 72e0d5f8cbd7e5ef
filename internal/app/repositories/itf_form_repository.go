package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// ITFFormRepository handles ITF form database operations
type ITFFormRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewITFFormRepository creates a new ITFFormRepository
func NewITFFormRepository(db *pgxpool.Pool) *ITFFormRepository {
	return &ITFFormRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new ITF form record.
func (r *ITFFormRepository) Create(ctx context.Context, form *models.ITFForm) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("itf_forms").
		Columns("title", "description", "file_url", "uploaded_by", "created_at").
		Values(form.Title, form.Description, form.FileURL, form.UploadedBy, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create itf form query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&form.ID); err != nil {
		logger.Error().Err(err).Str("title", form.Title).Msg("Error executing create itf form query")
		return fmt.Errorf("error creating itf form: %w", err)
	}
	form.CreatedAt = now
	return nil
}

// List returns all ITF forms, newest first.
func (r *ITFFormRepository) List(ctx context.Context) ([]*models.ITFForm, error) {
	sql, args, err := r.sb.Select("id", "title", "description", "file_url", "uploaded_by", "created_at").
		From("itf_forms").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list itf forms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list itf forms query")
		return nil, fmt.Errorf("error listing itf forms: %w", err)
	}
	defer rows.Close()

	var forms []*models.ITFForm
	for rows.Next() {
		var f models.ITFForm
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.FileURL, &f.UploadedBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning itf form row: %w", err)
		}
		forms = append(forms, &f)
	}
	return forms, rows.Err()
}

// GetByID retrieves one ITF form.
func (r *ITFFormRepository) GetByID(ctx context.Context, id int64) (*models.ITFForm, error) {
	sql, args, err := r.sb.Select("id", "title", "description", "file_url", "uploaded_by", "created_at").
		From("itf_forms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get itf form query: %w", err)
	}

	var f models.ITFForm
	err = r.db.QueryRow(ctx, sql, args...).Scan(&f.ID, &f.Title, &f.Description, &f.FileURL, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrITFFormNotFound
		}
		logger.Error().Err(err).Int64("formID", id).Msg("Error scanning itf form row")
		return nil, fmt.Errorf("error retrieving itf form: %w", err)
	}
	return &f, nil
}

// Delete removes an ITF form record.
func (r *ITFFormRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM itf_forms WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("formID", id).Msg("Error executing delete itf form query")
		return fmt.Errorf("error deleting itf form: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrITFFormNotFound
	}
	return nil
}
