package authz

// Capability is a named, fine-grained permission checked against a role.
type Capability string

const (
	CapViewAllProducts   Capability = "view_all_products"
	CapModerateProducts  Capability = "moderate_products"
	CapDeleteProducts    Capability = "delete_products"
	CapViewAllOrders     Capability = "view_all_orders"
	CapMutateOrderStatus Capability = "mutate_order_status"
	CapViewAllUsers      Capability = "view_all_users"
	CapAssignRoles       Capability = "assign_roles"
	CapViewAuditLog      Capability = "view_audit_log"
)

// grants maps each non-admin role to the capabilities it holds. Admin is not
// listed: it implies every capability and is short-circuited in Can.
// field_officer and moderator are deliberately incomparable: officers can
// moderate product status but not delete, and can read but not mutate orders.
var grants = map[Role]map[Capability]bool{
	RoleUser: {},
	RoleFieldOfficer: {
		CapViewAllProducts:  true,
		CapModerateProducts: true,
		CapViewAllOrders:    true,
		CapViewAuditLog:     true,
	},
	RoleModerator: {
		CapViewAllProducts:   true,
		CapModerateProducts:  true,
		CapDeleteProducts:    true,
		CapViewAllOrders:     true,
		CapMutateOrderStatus: true,
		CapViewAllUsers:      true,
		CapViewAuditLog:      true,
	},
}

// Can reports whether a role holds a capability. RoleNone evaluates as
// RoleUser. Any role outside the closed set evaluates to false for every
// capability; Can never defaults to allow.
func Can(role Role, c Capability) bool {
	if role == RoleNone {
		role = RoleUser
	}
	if role == RoleAdmin {
		return true
	}

	caps, ok := grants[role]
	if !ok {
		return false
	}
	return caps[c]
}

// Capabilities returns the full capability set, for exhaustive checks.
func Capabilities() []Capability {
	return []Capability{
		CapViewAllProducts,
		CapModerateProducts,
		CapDeleteProducts,
		CapViewAllOrders,
		CapMutateOrderStatus,
		CapViewAllUsers,
		CapAssignRoles,
		CapViewAuditLog,
	}
}
