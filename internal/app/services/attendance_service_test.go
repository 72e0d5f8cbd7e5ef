package services

import (
	"context"
	"errors"
	"testing"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
)

func newAttendanceFixture() (*AttendanceService, *fakeUserStore, *fakeStudentStore, *fakeAttendanceStore) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	attendance := &fakeAttendanceStore{}
	return NewAttendanceService(attendance, students), users, students, attendance
}

func TestComputeAttendanceStats(t *testing.T) {
	tests := []struct {
		name    string
		present []bool
		want    models.AttendanceStats
	}{
		{
			name: "no records",
			want: models.AttendanceStats{},
		},
		{
			name:    "three present one absent",
			present: []bool{true, true, true, false},
			want:    models.AttendanceStats{TotalDays: 4, PresentCount: 3, AbsentCount: 1, Rate: 75},
		},
		{
			name:    "rate rounds to two decimals",
			present: []bool{true, false, false},
			want:    models.AttendanceStats{TotalDays: 3, PresentCount: 1, AbsentCount: 2, Rate: 33.33},
		},
		{
			name:    "all present",
			present: []bool{true, true},
			want:    models.AttendanceStats{TotalDays: 2, PresentCount: 2, AbsentCount: 0, Rate: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []*models.AttendanceRecord
			for _, p := range tt.present {
				records = append(records, &models.AttendanceRecord{Present: p})
			}
			got := ComputeAttendanceStats(records)
			if got != tt.want {
				t.Errorf("ComputeAttendanceStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMarkAttendance(t *testing.T) {
	service, users, students, _ := newAttendanceFixture()
	supervisor := addUser(users, "sup@company.com", models.RoleIndustrySupervisor)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, supervisor.ID)

	rec, stats, err := service.Mark(context.Background(), supervisor.ID, dto.MarkAttendanceRequest{
		StudentID: student.UserID,
		Date:      "2024-03-01",
		Present:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Mark() error = %v", err)
	}
	if rec.ID == 0 || !rec.Present || rec.SupervisorID != supervisor.ID {
		t.Errorf("Mark() record = %+v", rec)
	}
	if stats.TotalDays != 1 || stats.Rate != 100 {
		t.Errorf("Mark() stats = %+v, want 1 day at 100%%", stats)
	}

	// A second mark on another day refreshes the stats.
	_, stats, err = service.Mark(context.Background(), supervisor.ID, dto.MarkAttendanceRequest{
		StudentID: student.UserID,
		Date:      "2024-03-02",
		Present:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Mark() second day error = %v", err)
	}
	if stats.TotalDays != 2 || stats.PresentCount != 1 || stats.Rate != 50 {
		t.Errorf("Mark() stats after two days = %+v", stats)
	}
}

func TestMarkAttendanceDuplicateDate(t *testing.T) {
	service, users, students, _ := newAttendanceFixture()
	supervisor := addUser(users, "sup@company.com", models.RoleIndustrySupervisor)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, supervisor.ID)

	req := dto.MarkAttendanceRequest{StudentID: student.UserID, Date: "2024-03-01", Present: boolPtr(true)}
	if _, _, err := service.Mark(context.Background(), supervisor.ID, req); err != nil {
		t.Fatalf("Mark() error = %v", err)
	}

	req.Present = boolPtr(false)
	if _, _, err := service.Mark(context.Background(), supervisor.ID, req); !errors.Is(err, apperrors.ErrAttendanceExists) {
		t.Errorf("Mark() duplicate date error = %v, want ErrAttendanceExists", err)
	}
}

func TestMarkAttendanceRequiresAssignedSupervisor(t *testing.T) {
	service, users, students, _ := newAttendanceFixture()
	assigned := addUser(users, "assigned@company.com", models.RoleIndustrySupervisor)
	other := addUser(users, "other@company.com", models.RoleIndustrySupervisor)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, assigned.ID)

	req := dto.MarkAttendanceRequest{StudentID: student.UserID, Date: "2024-03-01", Present: boolPtr(true)}
	if _, _, err := service.Mark(context.Background(), other.ID, req); !errors.Is(err, apperrors.ErrNotAssignedStudent) {
		t.Errorf("Mark() by unassigned supervisor error = %v, want ErrNotAssignedStudent", err)
	}

	// A student with no supervisor at all cannot be marked either.
	unlinked := addStudent(users, students, "unlinked@school.edu", "CSC/2021/002", "Computer Science")
	req.StudentID = unlinked.UserID
	if _, _, err := service.Mark(context.Background(), assigned.ID, req); !errors.Is(err, apperrors.ErrNotAssignedStudent) {
		t.Errorf("Mark() unlinked student error = %v, want ErrNotAssignedStudent", err)
	}
}

func TestMarkAttendanceBadDate(t *testing.T) {
	service, users, students, _ := newAttendanceFixture()
	supervisor := addUser(users, "sup@company.com", models.RoleIndustrySupervisor)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, supervisor.ID)

	req := dto.MarkAttendanceRequest{StudentID: student.UserID, Date: "01/03/2024", Present: boolPtr(true)}
	if _, _, err := service.Mark(context.Background(), supervisor.ID, req); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Mark() with bad date error = %v, want ErrBadRequest", err)
	}
}

func TestListAttendanceAuthorization(t *testing.T) {
	service, users, students, attendance := newAttendanceFixture()
	industrySup := addUser(users, "industry@company.com", models.RoleIndustrySupervisor)
	schoolSup := addUser(users, "school@school.edu", models.RoleSchoolSupervisor)
	otherSup := addUser(users, "other@school.edu", models.RoleSchoolSupervisor)
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	otherStudent := addStudent(users, students, "peer@school.edu", "CSC/2021/002", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, industrySup.ID)
	students.SetSchoolSupervisor(context.Background(), student.UserID, schoolSup.ID)

	attendance.Create(context.Background(), &models.AttendanceRecord{StudentID: student.UserID, Present: true, SupervisorID: industrySup.ID})

	tests := []struct {
		name       string
		callerID   int64
		callerRole models.RoleType
		wantErr    error
	}{
		{"admin sees any student", admin.ID, models.RoleAdmin, nil},
		{"student sees own records", student.UserID, models.RoleStudent, nil},
		{"student cannot see a peer", otherStudent.UserID, models.RoleStudent, apperrors.ErrPermissionDenied},
		{"assigned industry supervisor", industrySup.ID, models.RoleIndustrySupervisor, nil},
		{"assigned school supervisor", schoolSup.ID, models.RoleSchoolSupervisor, nil},
		{"unassigned school supervisor", otherSup.ID, models.RoleSchoolSupervisor, apperrors.ErrNotAssignedStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, stats, err := service.ListForStudent(context.Background(), tt.callerID, tt.callerRole, student.UserID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListForStudent() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListForStudent() error = %v", err)
			}
			if len(records) != 1 || stats.TotalDays != 1 {
				t.Errorf("ListForStudent() = %d records, stats %+v", len(records), stats)
			}
		})
	}
}

func TestUpdateAttendance(t *testing.T) {
	service, users, students, _ := newAttendanceFixture()
	supervisor := addUser(users, "sup@company.com", models.RoleIndustrySupervisor)
	other := addUser(users, "other@company.com", models.RoleIndustrySupervisor)
	student := addStudent(users, students, "student@school.edu", "CSC/2021/001", "Computer Science")
	students.SetIndustrySupervisor(context.Background(), student.UserID, supervisor.ID)

	rec, _, err := service.Mark(context.Background(), supervisor.ID, dto.MarkAttendanceRequest{
		StudentID: student.UserID,
		Date:      "2024-03-01",
		Present:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Mark() error = %v", err)
	}

	if _, _, err := service.Update(context.Background(), other.ID, rec.ID, dto.UpdateAttendanceRequest{Present: boolPtr(false)}); !errors.Is(err, apperrors.ErrNotAssignedStudent) {
		t.Errorf("Update() by unassigned supervisor error = %v, want ErrNotAssignedStudent", err)
	}

	updated, stats, err := service.Update(context.Background(), supervisor.ID, rec.ID, dto.UpdateAttendanceRequest{
		Present: boolPtr(false),
		Notes:   strPtr("left early"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Present || updated.Notes == nil || *updated.Notes != "left early" {
		t.Errorf("Update() record = %+v", updated)
	}
	if stats.PresentCount != 0 || stats.AbsentCount != 1 {
		t.Errorf("Update() stats = %+v, want the flip reflected", stats)
	}

	if _, _, err := service.Update(context.Background(), supervisor.ID, 999, dto.UpdateAttendanceRequest{Present: boolPtr(true)}); !errors.Is(err, apperrors.ErrAttendanceNotFound) {
		t.Errorf("Update() unknown record error = %v, want ErrAttendanceNotFound", err)
	}
}
