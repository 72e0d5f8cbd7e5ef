package dto

// IndustrySupervisorStatusResponse tells a student whether an industry
// supervisor is linked to them yet.
type IndustrySupervisorStatusResponse struct {
	Linked     bool          `json:"linked"`
	Supervisor *UserResponse `json:"supervisor,omitempty"`
}

// SupervisorUploadResponse summarizes a student's industry supervisor CSV
// upload.
type SupervisorUploadResponse struct {
	SupervisorID      int64  `json:"supervisorId"`
	Email             string `json:"email"`
	Company           string `json:"company,omitempty"`
	Created           bool   `json:"created"` // False when an existing account was linked
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}
