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
	"github.com/adeyemi/siwes-portal/internal/pkg/dberrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// LogbookRepository handles logbook database operations
type LogbookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLogbookRepository creates a new LogbookRepository
func NewLogbookRepository(db *pgxpool.Pool) *LogbookRepository {
	return &LogbookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts one draft logbook entry. The unique (student_id, date) key
// rejects a second entry for the same day.
func (r *LogbookRepository) Create(ctx context.Context, entry *models.LogbookEntry) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("logbook_entries").
		Columns("student_id", "date", "description", "image_url", "submitted", "created_at", "updated_at").
		Values(entry.StudentID, entry.Date, entry.Description, entry.ImageURL, false, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create logbook entry query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "logbook_entries_student_id_date_key") {
			return apperrors.ErrLogbookEntryExists
		}
		logger.Error().Err(err).Int64("studentID", entry.StudentID).Msg("Error executing create logbook entry query")
		return fmt.Errorf("error creating logbook entry: %w", err)
	}
	entry.Submitted = false
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

// ListByStudent returns all entries for one student, oldest first.
func (r *LogbookRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.LogbookEntry, error) {
	sql, args, err := r.sb.Select("id", "student_id", "date", "description", "image_url", "submitted", "created_at", "updated_at").
		From("logbook_entries").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list logbook entries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list logbook entries query")
		return nil, fmt.Errorf("error listing logbook entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LogbookEntry
	for rows.Next() {
		var e models.LogbookEntry
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Date, &e.Description, &e.ImageURL, &e.Submitted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning logbook row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// GetByID retrieves one logbook entry.
func (r *LogbookRepository) GetByID(ctx context.Context, id int64) (*models.LogbookEntry, error) {
	sql, args, err := r.sb.Select("id", "student_id", "date", "description", "image_url", "submitted", "created_at", "updated_at").
		From("logbook_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get logbook entry query: %w", err)
	}

	var e models.LogbookEntry
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.StudentID, &e.Date, &e.Description, &e.ImageURL, &e.Submitted, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogbookEntryNotFound
		}
		logger.Error().Err(err).Int64("entryID", id).Msg("Error scanning logbook row")
		return nil, fmt.Errorf("error retrieving logbook entry: %w", err)
	}
	return &e, nil
}

// Update edits the description and image of a draft entry. Submitted entries
// are immutable; the guard lives in the query so concurrent submits cannot
// slip an edit through.
func (r *LogbookRepository) Update(ctx context.Context, id int64, description string, imageURL *string) error {
	builder := r.sb.Update("logbook_entries").
		Set("description", description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "submitted": false})
	if imageURL != nil {
		builder = builder.Set("image_url", *imageURL)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update logbook entry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("entryID", id).Msg("Error executing update logbook entry query")
		return fmt.Errorf("error updating logbook entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadySubmitted
	}
	return nil
}

// MarkSubmitted flips the submitted flag. Returns ErrAlreadySubmitted when
// the entry was already submitted.
func (r *LogbookRepository) MarkSubmitted(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("logbook_entries").
		Set("submitted", true).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "submitted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build submit logbook entry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("entryID", id).Msg("Error executing submit logbook entry query")
		return fmt.Errorf("error submitting logbook entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadySubmitted
	}
	return nil
}
