// Package auth decides whether a caller role may perform an action on a
// resource table. The role arrives with the request; it is trusted input
// from the gateway, so the check is a capability lookup, not authentication.
package auth

// Action names the operation a caller wants to perform on a table.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Known caller roles.
const (
	RoleAdmin = "db_admin"
	RoleApp   = "app_user"
	RoleAudit = "audit_user"
)

// DefaultRole is assumed when a request carries no role header.
const DefaultRole = RoleApp

// Checker is consulted once per operation, before any state is touched.
type Checker interface {
	CanPerform(role, table string, action Action) bool
}

// RoleChecker implements the static role matrix: db_admin may do anything,
// app_user may mutate domain tables but only view reports, audit_user may
// only view reports. Unknown roles are denied outright.
type RoleChecker struct{}

func NewRoleChecker() *RoleChecker {
	return &RoleChecker{}
}

func (c *RoleChecker) CanPerform(role, table string, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleApp:
		if table == "reports" {
			return action == ActionView
		}
		return true
	case RoleAudit:
		return table == "reports" && action == ActionView
	default:
		return false
	}
}

// Role normalizes a role header value, falling back to the default role.
func Role(headerValue string) string {
	if headerValue == "" {
		return DefaultRole
	}
	return headerValue
}
