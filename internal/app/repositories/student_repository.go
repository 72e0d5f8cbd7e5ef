package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/dberrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

const studentJoinColumns = `s.id, s.user_id, s.matric_number, s.department, s.company_name, s.profile, s.industry_supervisor_id, s.school_supervisor_id,
	u.id, u.email, u.password, u.first_name, u.last_name, u.role_type, u.must_change_password, u.is_active, u.image_url, u.last_login_at, u.created_at, u.updated_at`

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudentWithUser(row pgx.Row) (*models.StudentProfile, error) {
	var sp models.StudentProfile
	var u models.User
	err := row.Scan(
		&sp.ID, &sp.UserID, &sp.MatricNumber, &sp.Department, &sp.CompanyName, &sp.Profile,
		&sp.IndustrySupervisorID, &sp.SchoolSupervisorID,
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType,
		&u.MustChangePassword, &u.IsActive, &u.ImageURL, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sp.User = &u
	return &sp, nil
}

// CreateStudent inserts a student profile row for an existing user.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "matric_number", "department", "company_name", "profile", "industry_supervisor_id", "school_supervisor_id").
		Values(student.UserID, student.MatricNumber, student.Department, student.CompanyName, student.Profile, student.IndustrySupervisorID, student.SchoolSupervisorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_matric_number_key") {
			return apperrors.ErrMatricNumberExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			return apperrors.NewConflictError("student profile already exists for this user")
		}
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByUserID retrieves a student profile (with its user) by the student's
// user id.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentJoinColumns).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"s.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudentWithUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// MatricNumberExists checks if a matric number is already registered.
func (r *StudentRepository) MatricNumberExists(ctx context.Context, matricNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM students WHERE matric_number = $1)", matricNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking matric number existence: %w", err)
	}
	return exists, nil
}

// SetCompanyName records the student's placement company.
func (r *StudentRepository) SetCompanyName(ctx context.Context, studentUserID int64, company string) error {
	sql, args, err := r.sb.Update("students").
		Set("company_name", company).
		Where(squirrel.Eq{"user_id": studentUserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set company query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentUserID", studentUserID).Msg("Error executing set company query")
		return fmt.Errorf("error recording placement company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetIndustrySupervisor links an industry supervisor to a student.
func (r *StudentRepository) SetIndustrySupervisor(ctx context.Context, studentUserID, supervisorID int64) error {
	return r.setSupervisor(ctx, "industry_supervisor_id", studentUserID, supervisorID)
}

// SetSchoolSupervisor links a school supervisor to a student.
func (r *StudentRepository) SetSchoolSupervisor(ctx context.Context, studentUserID, supervisorID int64) error {
	return r.setSupervisor(ctx, "school_supervisor_id", studentUserID, supervisorID)
}

func (r *StudentRepository) setSupervisor(ctx context.Context, column string, studentUserID, supervisorID int64) error {
	sql, args, err := r.sb.Update("students").
		Set(column, supervisorID).
		Where(squirrel.Eq{"user_id": studentUserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set supervisor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentUserID", studentUserID).Int64("supervisorID", supervisorID).Msg("Error executing set supervisor query")
		return fmt.Errorf("error assigning supervisor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ListByIndustrySupervisor returns all students assigned to an industry
// supervisor.
func (r *StudentRepository) ListByIndustrySupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error) {
	return r.listWhere(ctx, squirrel.Eq{"s.industry_supervisor_id": supervisorID})
}

// ListBySchoolSupervisor returns all students assigned to a school supervisor.
func (r *StudentRepository) ListBySchoolSupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error) {
	return r.listWhere(ctx, squirrel.Eq{"s.school_supervisor_id": supervisorID})
}

// ListUnassignedSchool returns students without a school supervisor,
// optionally filtered by department.
func (r *StudentRepository) ListUnassignedSchool(ctx context.Context, department string) ([]*models.StudentProfile, error) {
	where := squirrel.And{squirrel.Eq{"s.school_supervisor_id": nil}}
	if department != "" {
		where = append(where, squirrel.Eq{"s.department": department})
	}
	return r.listWhere(ctx, where)
}

func (r *StudentRepository) listWhere(ctx context.Context, pred interface{}) ([]*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentJoinColumns).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(pred).
		OrderBy("s.user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		student, err := scanStudentWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// SchoolSupervisorLoads returns the current number of assigned students per
// school supervisor.
func (r *StudentRepository) SchoolSupervisorLoads(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.Query(ctx,
		"SELECT school_supervisor_id, COUNT(*) FROM students WHERE school_supervisor_id IS NOT NULL GROUP BY school_supervisor_id")
	if err != nil {
		return nil, fmt.Errorf("error querying supervisor loads: %w", err)
	}
	defer rows.Close()

	loads := make(map[int64]int)
	for rows.Next() {
		var supervisorID int64
		var count int
		if err := rows.Scan(&supervisorID, &count); err != nil {
			return nil, fmt.Errorf("error scanning supervisor load: %w", err)
		}
		loads[supervisorID] = count
	}
	return loads, rows.Err()
}

// ListAll returns a page of students with their supervisor links and the
// total count.
func (r *StudentRepository) ListAll(ctx context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := r.sb.Select(studentJoinColumns).
		From("students s").
		Join("users u ON u.id = s.user_id").
		OrderBy("s.user_id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		student, err := scanStudentWithUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}
