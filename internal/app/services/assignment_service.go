package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// AssignmentService handles supervisor-to-student assignment
type AssignmentService struct {
	students StudentStore
	users    UserStore
	notifier Notifier
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(students StudentStore, users UserStore, notifier Notifier) *AssignmentService {
	return &AssignmentService{
		students: students,
		users:    users,
		notifier: notifier,
	}
}

// AssignIndustrySupervisor links one industry supervisor to one student.
// Reassignment requires the existing link to be absent.
func (s *AssignmentService) AssignIndustrySupervisor(ctx context.Context, req dto.AssignSupervisorRequest) error {
	return s.assign(ctx, req, models.RoleIndustrySupervisor)
}

// AssignSchoolSupervisor links one school supervisor to one student.
func (s *AssignmentService) AssignSchoolSupervisor(ctx context.Context, req dto.AssignSupervisorRequest) error {
	return s.assign(ctx, req, models.RoleSchoolSupervisor)
}

func (s *AssignmentService) assign(ctx context.Context, req dto.AssignSupervisorRequest, role models.RoleType) error {
	student, err := s.students.GetByUserID(ctx, req.StudentID)
	if err != nil {
		return err
	}

	supervisor, err := s.users.GetUserByID(ctx, req.SupervisorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrSupervisorNotFound
		}
		return err
	}
	if supervisor.RoleType != role {
		return apperrors.ErrSupervisorNotFound
	}

	if role == models.RoleIndustrySupervisor {
		if student.IndustrySupervisorID != nil {
			return apperrors.ErrSupervisorAssigned
		}
		err = s.students.SetIndustrySupervisor(ctx, req.StudentID, req.SupervisorID)
	} else {
		if student.SchoolSupervisorID != nil {
			return apperrors.ErrSupervisorAssigned
		}
		err = s.students.SetSchoolSupervisor(ctx, req.StudentID, req.SupervisorID)
	}
	if err != nil {
		return err
	}

	if notifyErr := s.notifier.CreateSystem(ctx, req.StudentID,
		"Supervisor assigned",
		fmt.Sprintf("%s has been assigned as your supervisor.", supervisor.FullName())); notifyErr != nil {
		logger.Warn().Err(notifyErr).Int64("studentID", req.StudentID).Msg("Failed to notify student of assignment")
	}
	return nil
}

type supervisorSlot struct {
	user     *models.User
	load     int
	assigned int
}

// RandomAssign distributes unassigned students across active school
// supervisors. The shuffle is seeded so a run can be reproduced; students go
// one at a time to the least loaded supervisor, lowest id first on ties,
// which keeps final loads within one of each other.
func (s *AssignmentService) RandomAssign(ctx context.Context, req dto.RandomAssignRequest) (*dto.RandomAssignResponse, error) {
	supervisors, err := s.users.ListActiveUsersByRole(ctx, models.RoleSchoolSupervisor)
	if err != nil {
		return nil, err
	}
	if len(supervisors) == 0 {
		return nil, apperrors.ErrNoSchoolSupervisors
	}

	unassigned, err := s.students.ListUnassignedSchool(ctx, req.Department)
	if err != nil {
		return nil, err
	}

	loads, err := s.students.SchoolSupervisorLoads(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]*supervisorSlot, 0, len(supervisors))
	for _, sup := range supervisors {
		slots = append(slots, &supervisorSlot{user: sup, load: loads[sup.ID]})
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(unassigned), func(i, j int) {
		unassigned[i], unassigned[j] = unassigned[j], unassigned[i]
	})

	for _, student := range unassigned {
		slot := slots[0]
		for _, candidate := range slots[1:] {
			if candidate.load < slot.load || (candidate.load == slot.load && candidate.user.ID < slot.user.ID) {
				slot = candidate
			}
		}

		if err := s.students.SetSchoolSupervisor(ctx, student.UserID, slot.user.ID); err != nil {
			return nil, err
		}
		slot.load++
		slot.assigned++

		if notifyErr := s.notifier.CreateSystem(ctx, student.UserID,
			"Supervisor assigned",
			fmt.Sprintf("%s has been assigned as your school supervisor.", slot.user.FullName())); notifyErr != nil {
			logger.Warn().Err(notifyErr).Int64("studentID", student.UserID).Msg("Failed to notify student of assignment")
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].user.ID < slots[j].user.ID })

	resp := &dto.RandomAssignResponse{
		Seed:     seed,
		Assigned: len(unassigned),
	}
	for _, slot := range slots {
		resp.Supervisors = append(resp.Supervisors, dto.SupervisorAssignmentCount{
			SupervisorID: slot.user.ID,
			Name:         slot.user.FullName(),
			Assigned:     slot.assigned,
			TotalLoad:    slot.load,
		})
	}

	logger.Info().Int64("seed", seed).Int("assigned", resp.Assigned).Msg("Random assignment completed")
	return resp, nil
}

// ListAssignedStudents returns the students linked to one supervisor.
func (s *AssignmentService) ListAssignedStudents(ctx context.Context, supervisorID int64, role models.RoleType) ([]*models.StudentProfile, error) {
	switch role {
	case models.RoleIndustrySupervisor:
		return s.students.ListByIndustrySupervisor(ctx, supervisorID)
	case models.RoleSchoolSupervisor:
		return s.students.ListBySchoolSupervisor(ctx, supervisorID)
	}
	return nil, apperrors.ErrPermissionDenied
}
