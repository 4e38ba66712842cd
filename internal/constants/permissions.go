package constants

const (
	VerifyGatePass = "verify_gate_pass"
	ManageClusters = "manage_clusters"
	ManageColleges = "manage_colleges"
	ViewAudit      = "view_audit"
	ViewRoster     = "view_roster"
)
