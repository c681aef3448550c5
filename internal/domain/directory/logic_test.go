package directory

import (
	"testing"

	"appraise/internal/domain/auth"
)

func TestRolePairAllowed(t *testing.T) {
	if !RolePairAllowed(auth.RoleTeamLeader, auth.RoleEmployee) {
		t.Fatal("team leader should act on employees")
	}
	if !RolePairAllowed(auth.RoleManager, auth.RoleTeamLeader) {
		t.Fatal("manager should act on team leaders")
	}
	if RolePairAllowed(auth.RoleTeamLeader, auth.RoleTeamLeader) {
		t.Fatal("team leader must not act on team leaders")
	}
	if RolePairAllowed(auth.RoleManager, auth.RoleEmployee) {
		t.Fatal("manager must not act on employees directly")
	}
	if RolePairAllowed(auth.RoleEmployee, auth.RoleEmployee) {
		t.Fatal("employees have no managerial pairing")
	}
}

func TestCanManageRequiresDirectReport(t *testing.T) {
	leader := UserRef{ID: "tl1", Role: auth.RoleTeamLeader}
	mine := UserRef{ID: "e1", Role: auth.RoleEmployee, ManagerID: "tl1"}
	other := UserRef{ID: "e2", Role: auth.RoleEmployee, ManagerID: "tl2"}

	if !CanManage(leader, mine) {
		t.Fatal("expected leader to manage direct report")
	}
	if CanManage(leader, other) {
		t.Fatal("leader must not manage someone else's report")
	}
}

func TestCreatesCycle(t *testing.T) {
	parents := map[string]string{
		"e1":  "tl1",
		"tl1": "m1",
	}
	lookup := func(id string) string { return parents[id] }

	// m1 -> e1 would make m1 an ancestor of itself through e1 -> tl1 -> m1.
	if !CreatesCycle("m1", "tl1", lookup) {
		t.Fatal("expected cycle to be detected")
	}
	if CreatesCycle("e2", "tl1", lookup) {
		t.Fatal("unrelated assignment must not be a cycle")
	}
	if CreatesCycle("e1", "", lookup) {
		t.Fatal("clearing a manager is never a cycle")
	}
	if !CreatesCycle("tl1", "tl1", lookup) {
		t.Fatal("self-management is a cycle")
	}
}
