package dto

// AssignSupervisorRequest links one supervisor to one student.
type AssignSupervisorRequest struct {
	StudentID    int64 `json:"studentId" binding:"required,min=1"`
	SupervisorID int64 `json:"supervisorId" binding:"required,min=1"`
}

// RandomAssignRequest balances unassigned students across school supervisors.
// The seed makes the shuffle reproducible; zero means derive one from the
// clock.
type RandomAssignRequest struct {
	Department string `json:"department"`
	Seed       int64  `json:"seed"`
}

// SupervisorAssignmentCount reports one supervisor's resulting load.
type SupervisorAssignmentCount struct {
	SupervisorID int64  `json:"supervisorId"`
	Name         string `json:"name,omitempty"`
	Assigned     int    `json:"assigned"` // Students assigned in this run
	TotalLoad    int    `json:"totalLoad"`
}

// RandomAssignResponse summarizes a balancing run.
type RandomAssignResponse struct {
	Seed        int64                       `json:"seed"`
	Assigned    int                         `json:"assigned"`
	Supervisors []SupervisorAssignmentCount `json:"supervisors"`
}
