package routes

const (
	// Health
	Health = "/health"

	// Public citizen intake
	SubmitRequest = "/api/v1/foi/requests"

	// Auth (relative to AuthBase)
	AuthBase    = "/api/v1/auth"
	AuthLogin   = "/login"
	AuthRefresh = "/refresh"
	AuthLogout  = "/logout"

	// Dashboard (protected)
	DashboardBase     = "/api/v1/dashboard"
	DashboardMenu     = "/menu"
	DashboardOverview = "/overview"

	Forms       = "/forms"
	FormByID    = "/forms/{id}"
	FormStatus  = "/forms/{id}/status"
	FormRefer   = "/forms/{id}/refer"
	Reports     = "/reports"
	ReportState = "/reports/{id}/status"
	Staff       = "/staff"
	StaffByID   = "/staff/{id}"
	StaffActive = "/staff/{id}/active"
	Logs        = "/logs"
	LogsAll     = "/logs/all"
)
