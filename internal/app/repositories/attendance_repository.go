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

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts one attendance record. The unique (student_id, date) key
// rejects a second mark for the same day.
func (r *AttendanceRepository) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("attendance_records").
		Columns("student_id", "date", "present", "notes", "supervisor_id", "created_at").
		Values(rec.StudentID, rec.Date, rec.Present, rec.Notes, rec.SupervisorID, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_records_student_id_date_key") {
			return apperrors.ErrAttendanceExists
		}
		logger.Error().Err(err).Int64("studentID", rec.StudentID).Msg("Error executing create attendance query")
		return fmt.Errorf("error creating attendance record: %w", err)
	}
	rec.CreatedAt = now
	return nil
}

// ListByStudent returns all attendance records for one student, oldest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	sql, args, err := r.sb.Select("id", "student_id", "date", "present", "notes", "supervisor_id", "created_at").
		From("attendance_records").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Present, &rec.Notes, &rec.SupervisorID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// GetByID retrieves one attendance record.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	sql, args, err := r.sb.Select("id", "student_id", "date", "present", "notes", "supervisor_id", "created_at").
		From("attendance_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	var rec models.AttendanceRecord
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Present, &rec.Notes, &rec.SupervisorID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}
	return &rec, nil
}

// Update changes the present flag and notes of one record.
func (r *AttendanceRepository) Update(ctx context.Context, id int64, present bool, notes *string) error {
	sql, args, err := r.sb.Update("attendance_records").
		Set("present", present).
		Set("notes", notes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error executing update attendance query")
		return fmt.Errorf("error updating attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}
