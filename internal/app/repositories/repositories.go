// Package repositories implements the data access layer on pgx with the
// squirrel statement builder.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	AttendanceRepository   *AttendanceRepository
	LogbookRepository      *LogbookRepository
	NotificationRepository *NotificationRepository
	TokenRepository        *TokenRepository
	ITFFormRepository      *ITFFormRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		LogbookRepository:      NewLogbookRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ITFFormRepository:      NewITFFormRepository(db),
	}
}
