package services

import "github.com/hartpuso/Valencia-City-Online-Report-System/internal/models"

// MenuItem is one dashboard section with the roles allowed to see it.
type MenuItem struct {
	ID           string             `json:"id"`
	Label        string             `json:"label"`
	AllowedRoles []models.StaffRole `json:"-"`
}

// dashboardMenu is the fixed ordered menu. Order matters: it is the order
// the sections render in.
var dashboardMenu = []MenuItem{
	{ID: "overview", Label: "Overview", AllowedRoles: []models.StaffRole{models.RoleAdmin, models.RoleStaff, models.RoleViewer}},
	{ID: "forms", Label: "Submitted Forms", AllowedRoles: []models.StaffRole{models.RoleAdmin, models.RoleStaff, models.RoleViewer}},
	{ID: "reports", Label: "Reports", AllowedRoles: []models.StaffRole{models.RoleAdmin, models.RoleStaff, models.RoleViewer}},
	{ID: "staff", Label: "Manage Staff", AllowedRoles: []models.StaffRole{models.RoleAdmin}},
	{ID: "logs", Label: "Activity Logs", AllowedRoles: []models.StaffRole{models.RoleAdmin, models.RoleStaff}},
}

// VisibleMenu returns the subsequence of the dashboard menu the given role
// may see. An unknown or empty role falls back to viewer.
func VisibleMenu(role models.StaffRole) []MenuItem {
	if !role.IsValid() {
		role = models.RoleViewer
	}
	var visible []MenuItem
	for _, item := range dashboardMenu {
		for _, allowed := range item.AllowedRoles {
			if allowed == role {
				visible = append(visible, item)
				break
			}
		}
	}
	return visible
}
