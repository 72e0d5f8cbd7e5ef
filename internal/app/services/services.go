package services

import (
	"github.com/adeyemi/siwes-portal/internal/app/repositories"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
	"github.com/adeyemi/siwes-portal/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	AttendanceService   *AttendanceService
	LogbookService      *LogbookService
	AssignmentService   *AssignmentService
	NotificationService *NotificationService
	ITFFormService      *ITFFormService
	SupervisorService   *SupervisorService
}

// NewServices initializes all services over the repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage *filestorage.LocalStorage) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository, repos.UserRepository)

	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:         NewUserService(repos.UserRepository, repos.StudentRepository),
		AttendanceService:   NewAttendanceService(repos.AttendanceRepository, repos.StudentRepository),
		LogbookService:      NewLogbookService(repos.LogbookRepository, repos.StudentRepository, notificationService),
		AssignmentService:   NewAssignmentService(repos.StudentRepository, repos.UserRepository, notificationService),
		NotificationService: notificationService,
		ITFFormService:      NewITFFormService(repos.ITFFormRepository, storage),
		SupervisorService:   NewSupervisorService(repos.UserRepository, repos.StudentRepository),
	}
}
