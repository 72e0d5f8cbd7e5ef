package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
)

func newUserFixture() (*UserService, *fakeUserStore, *fakeStudentStore) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	return NewUserService(users, students), users, students
}

func TestImportCSVCreatesAccounts(t *testing.T) {
	service, users, students := newUserFixture()

	csvData := strings.Join([]string{
		"email,firstName,lastName,role,matricNumber,department",
		"ada@school.edu,Ada,Obi,STUDENT,CSC/2021/001,Computer Science",
		"ben@company.com,Ben,Eze,INDUSTRY_SUPERVISOR,,",
		"chi@school.edu,Chi,Udo,SCHOOL_SUPERVISOR,,",
	}, "\n")

	resp, err := service.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if resp.Created != 3 || resp.Failed != 0 {
		t.Fatalf("ImportCSV() created = %d, failed = %d, rows = %+v", resp.Created, resp.Failed, resp.Rows)
	}

	for _, row := range resp.Rows {
		if row.TemporaryPassword == "" {
			t.Errorf("ImportCSV() row %d has no temporary password", row.Line)
		}
		if !auth.ValidatePasswordStrength(row.TemporaryPassword) {
			t.Errorf("ImportCSV() temporary password %q fails the strength rule", row.TemporaryPassword)
		}
	}

	student, err := users.GetUserByEmail(context.Background(), "ada@school.edu")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if !student.MustChangePassword {
		t.Errorf("ImportCSV() student not flagged for password change")
	}
	profile, err := students.GetByUserID(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if profile.MatricNumber != "CSC/2021/001" || profile.Department != "Computer Science" {
		t.Errorf("ImportCSV() student profile = %+v", profile)
	}
}

func TestImportCSVHeaderValidation(t *testing.T) {
	service, _, _ := newUserFixture()

	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"wrong columns", "name,surname\nAda,Obi"},
		{"shuffled header", "firstName,email,lastName,role\nAda,ada@school.edu,Obi,STUDENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.ImportCSV(context.Background(), strings.NewReader(tt.data)); !errors.Is(err, apperrors.ErrBadRequest) {
				t.Errorf("ImportCSV() error = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestImportCSVRowFailuresDoNotAbort(t *testing.T) {
	service, users, students := newUserFixture()
	addUser(users, "taken@school.edu", models.RoleStudent)
	addStudent(users, students, "existing@school.edu", "CSC/2021/001", "Computer Science")

	csvData := strings.Join([]string{
		"email,firstName,lastName,role,matricNumber,department",
		"taken@school.edu,Dup,User,SCHOOL_SUPERVISOR,,",
		"nomatric@school.edu,No,Matric,STUDENT,,",
		"dupmatric@school.edu,Dup,Matric,STUDENT,CSC/2021/001,Computer Science",
		"badrole@school.edu,Bad,Role,JANITOR,,",
		"good@school.edu,Good,Row,SCHOOL_SUPERVISOR,,",
	}, "\n")

	resp, err := service.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if resp.Created != 1 || resp.Failed != 4 {
		t.Fatalf("ImportCSV() created = %d, failed = %d, rows = %+v", resp.Created, resp.Failed, resp.Rows)
	}

	wantErrors := map[int]string{
		2: "email already exists",
		3: "matricNumber is required for STUDENT rows",
		4: "matric number already exists",
		5: "unknown role: JANITOR",
	}
	for _, row := range resp.Rows {
		if want, ok := wantErrors[row.Line]; ok {
			if row.Error != want {
				t.Errorf("ImportCSV() line %d error = %q, want %q", row.Line, row.Error, want)
			}
		} else if row.Error != "" {
			t.Errorf("ImportCSV() line %d unexpected error %q", row.Line, row.Error)
		}
	}

	if _, err := users.GetUserByEmail(context.Background(), "good@school.edu"); err != nil {
		t.Errorf("ImportCSV() good row not created: %v", err)
	}
	// The duplicate-matric row must not leave a profileless account behind.
	if _, err := users.GetUserByEmail(context.Background(), "dupmatric@school.edu"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("ImportCSV() duplicate-matric row created an account: %v", err)
	}
}

func TestListUsersRoleFilter(t *testing.T) {
	service, users, _ := newUserFixture()
	addUser(users, "admin@school.edu", models.RoleAdmin)
	addUser(users, "a@school.edu", models.RoleStudent)
	addUser(users, "b@school.edu", models.RoleStudent)

	if _, _, err := service.List(context.Background(), "WIZARD", 1, 10); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("List() with unknown role error = %v, want ErrBadRequest", err)
	}

	list, pagination, err := service.List(context.Background(), "STUDENT", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || pagination.TotalItems != 2 {
		t.Errorf("List(STUDENT) = %d users, total %d", len(list), pagination.TotalItems)
	}

	list, pagination, err = service.List(context.Background(), "", 1, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || pagination.TotalItems != 3 || pagination.TotalPages != 2 {
		t.Errorf("List() page 1 = %d users, pagination %+v", len(list), pagination)
	}
}

func TestSetActive(t *testing.T) {
	service, users, _ := newUserFixture()
	user := addUser(users, "student@school.edu", models.RoleStudent)

	if err := service.SetActive(context.Background(), user.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if user.IsActive {
		t.Errorf("SetActive() did not disable the account")
	}

	if err := service.SetActive(context.Background(), 999, false); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("SetActive() unknown user error = %v, want ErrUserNotFound", err)
	}
}
