package auth

import "testing"

func TestRoleHasPermission(t *testing.T) {
	if !RoleHasPermission(RoleHR, PermAppraisalsDecide) {
		t.Fatal("expected hr_admin to decide appraisals")
	}
	if RoleHasPermission(RoleEmployee, PermAppraisalsDecide) {
		t.Fatal("employee must not decide appraisals")
	}
	if RoleHasPermission(RoleEmployee, PermTasksWrite) {
		t.Fatal("employee must not create tasks")
	}
	if !RoleHasPermission(RoleTeamLeader, PermRatingsWrite) {
		t.Fatal("expected team_leader to write ratings")
	}
	if RoleHasPermission("unknown", PermDirectoryRead) {
		t.Fatal("unknown role must have no permissions")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleTeamLeader, RoleManager, RoleHR} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Fatal("superuser is not a role")
	}
}
