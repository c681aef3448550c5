package auth

const (
	RoleEmployee   = "employee"
	RoleTeamLeader = "team_leader"
	RoleManager    = "manager"
	RoleHR         = "hr_admin"
)

const (
	PermDirectoryRead     = "directory.read"
	PermDirectoryWrite    = "directory.write"
	PermTasksRead         = "tasks.read"
	PermTasksWrite        = "tasks.write"
	PermTasksSubmit       = "tasks.submit"
	PermRatingsRead       = "ratings.read"
	PermRatingsWrite      = "ratings.write"
	PermAppraisalsRead    = "appraisals.read"
	PermAppraisalsCreate  = "appraisals.create"
	PermAppraisalsDecide  = "appraisals.decide"
	PermAppraisalsExport  = "appraisals.export"
	PermPeriodsWrite      = "periods.write"
	PermNotificationsRead = "notifications.read"
)

// RolePermissions is the single place role-based access is decided; handlers
// check it once per operation instead of branching on role names.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermDirectoryRead,
		PermTasksRead,
		PermTasksSubmit,
		PermAppraisalsRead,
		PermAppraisalsExport,
		PermNotificationsRead,
	},
	RoleTeamLeader: {
		PermDirectoryRead,
		PermTasksRead,
		PermTasksWrite,
		PermTasksSubmit,
		PermRatingsRead,
		PermRatingsWrite,
		PermAppraisalsRead,
		PermAppraisalsCreate,
		PermAppraisalsExport,
		PermNotificationsRead,
	},
	RoleManager: {
		PermDirectoryRead,
		PermTasksRead,
		PermTasksWrite,
		PermRatingsRead,
		PermRatingsWrite,
		PermAppraisalsRead,
		PermAppraisalsCreate,
		PermAppraisalsExport,
		PermNotificationsRead,
	},
	RoleHR: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermRatingsRead,
		PermAppraisalsRead,
		PermAppraisalsCreate,
		PermAppraisalsDecide,
		PermAppraisalsExport,
		PermPeriodsWrite,
		PermNotificationsRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

func RoleHasPermission(role, permission string) bool {
	for _, candidate := range RolePermissions[role] {
		if candidate == permission {
			return true
		}
	}
	return false
}
