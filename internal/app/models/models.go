package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin              RoleType = "ADMIN"
	RoleStudent            RoleType = "STUDENT"
	RoleSchoolSupervisor   RoleType = "SCHOOL_SUPERVISOR"
	RoleIndustrySupervisor RoleType = "INDUSTRY_SUPERVISOR"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(role string) bool {
	switch RoleType(role) {
	case RoleAdmin, RoleStudent, RoleSchoolSupervisor, RoleIndustrySupervisor:
		return true
	}
	return false
}

// SupervisorRoles lists the two supervisor roles.
var SupervisorRoles = []RoleType{RoleSchoolSupervisor, RoleIndustrySupervisor}

// RecipientType defines how a notification resolves its recipient set
type RecipientType string

const (
	RecipientAll  RecipientType = "ALL"
	RecipientRole RecipientType = "ROLE"
	RecipientUser RecipientType = "USER"
)
