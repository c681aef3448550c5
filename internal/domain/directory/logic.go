package directory

import "appraise/internal/domain/auth"

// RolePairAllowed encodes who may rate, assign to, or appraise whom:
// team leaders act on employees, managers act on team leaders.
func RolePairAllowed(actorRole, targetRole string) bool {
	switch actorRole {
	case auth.RoleTeamLeader:
		return targetRole == auth.RoleEmployee
	case auth.RoleManager:
		return targetRole == auth.RoleTeamLeader
	default:
		return false
	}
}

// CanManage reports whether actor may perform managerial writes against
// target: the role pairing must hold and target must report directly to actor.
func CanManage(actor, target UserRef) bool {
	if !RolePairAllowed(actor.Role, target.Role) {
		return false
	}
	return target.ManagerID == actor.ID
}

// CreatesCycle walks the manager chain upward from managerID using parent and
// reports whether assigning managerID as userID's manager would make userID
// its own ancestor. The visited set also stops on pre-existing loops.
func CreatesCycle(userID, managerID string, parent func(string) string) bool {
	if userID == "" || managerID == "" {
		return false
	}
	visited := map[string]bool{}
	for current := managerID; current != ""; current = parent(current) {
		if current == userID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true
	}
	return false
}
