// Package services implements the business logic layer. Services depend on
// narrow store interfaces satisfied by the repositories, so tests can swap
// in in-memory fakes.
package services

import (
	"context"
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
)

// UserStore is the persistence surface services need for users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string, mustChange bool) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, imageURL *string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error)
	ListActiveUserIDs(ctx context.Context) ([]int64, error)
	ListActiveUserIDsByRole(ctx context.Context, role models.RoleType) ([]int64, error)
	ListActiveUsersByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
}

// StudentStore is the persistence surface services need for student profiles.
type StudentStore interface {
	CreateStudent(ctx context.Context, student *models.StudentProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	MatricNumberExists(ctx context.Context, matricNumber string) (bool, error)
	SetCompanyName(ctx context.Context, studentUserID int64, company string) error
	SetIndustrySupervisor(ctx context.Context, studentUserID, supervisorID int64) error
	SetSchoolSupervisor(ctx context.Context, studentUserID, supervisorID int64) error
	ListByIndustrySupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error)
	ListBySchoolSupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error)
	ListUnassignedSchool(ctx context.Context, department string) ([]*models.StudentProfile, error)
	SchoolSupervisorLoads(ctx context.Context) (map[int64]int, error)
	ListAll(ctx context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error)
}

// AttendanceStore is the persistence surface for attendance records.
type AttendanceStore interface {
	Create(ctx context.Context, rec *models.AttendanceRecord) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
	GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	Update(ctx context.Context, id int64, present bool, notes *string) error
}

// LogbookStore is the persistence surface for logbook entries.
type LogbookStore interface {
	Create(ctx context.Context, entry *models.LogbookEntry) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.LogbookEntry, error)
	GetByID(ctx context.Context, id int64) (*models.LogbookEntry, error)
	Update(ctx context.Context, id int64, description string, imageURL *string) error
	MarkSubmitted(ctx context.Context, id int64) error
}

// NotificationStore is the persistence surface for notifications and their
// per-user deliveries.
type NotificationStore interface {
	CreateWithFanout(ctx context.Context, n *models.Notification, recipientIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListAll(ctx context.Context, offset uint64, limit int) ([]*models.Notification, int64, error)
	CountDeliveries(ctx context.Context, notificationID int64) (int64, error)
	Update(ctx context.Context, id int64, title, body string) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (totalNotifications, totalDeliveries, totalRead int64, err error)
	ListForUser(ctx context.Context, userID int64) ([]*models.UserNotification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, userNotificationID int64) error
}

// TokenStore is the persistence surface for the token blacklist.
type TokenStore interface {
	Blacklist(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// ITFFormStore is the persistence surface for ITF form documents.
type ITFFormStore interface {
	Create(ctx context.Context, form *models.ITFForm) error
	List(ctx context.Context) ([]*models.ITFForm, error)
	GetByID(ctx context.Context, id int64) (*models.ITFForm, error)
	Delete(ctx context.Context, id int64) error
}

// FileStore removes stored files when their database records go away.
type FileStore interface {
	DeleteFile(filePath string) error
}
