// internal/dtos/report_dtos.go
package dtos

type CreateReportRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ReportType  string `json:"report_type" validate:"required,oneof=summary detailed monthly"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

type UpdateStaffRequest struct {
	Role       string `json:"role" validate:"required,oneof=admin staff viewer"`
	Department string `json:"department" validate:"required"`
}

type ToggleStaffActiveResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}
