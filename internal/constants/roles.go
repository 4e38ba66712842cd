package constants

// Roles, least to most privileged. "lead" is not a role: team leadership is
// the lead_id column on the team row, checked by the portfolio service.
const (
	Participant  = "participant"
	Verifier     = "verifier"
	CollegeAdmin = "collegeadmin"
	Admin        = "admin"
	Superadmin   = "superadmin"
)
