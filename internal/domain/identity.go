package domain

// Role of the acting user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Identity is the authenticated actor attached to a request. A zero ActorID
// means unauthenticated.
type Identity struct {
	ActorID int64 `json:"actor_id"`
	Role    Role  `json:"role"`
}

// IsAuthenticated reports whether an actor is present.
func (i Identity) IsAuthenticated() bool {
	return i.ActorID != 0
}

// Capability names one gated dashboard action. Authorization decisions live
// here, in one place, instead of role checks scattered across handlers.
type Capability string

const (
	// CapCheckout allows converting the cart into orders and paying them.
	// Admins monitor; they do not shop.
	CapCheckout Capability = "checkout"

	// CapViewAllOrders allows seeing every client's orders and payments.
	CapViewAllOrders Capability = "view_all_orders"

	// CapManageOrders allows updating order status and deleting orders.
	CapManageOrders Capability = "manage_orders"

	// CapManageClients allows listing, registering, and removing clients.
	CapManageClients Capability = "manage_clients"

	// CapManageCatalog allows adding and removing catalog products.
	CapManageCatalog Capability = "manage_catalog"
)

// Can reports whether the identity may perform the given action.
func (i Identity) Can(c Capability) bool {
	if !i.IsAuthenticated() {
		return false
	}
	switch c {
	case CapCheckout:
		return i.Role == RoleUser
	case CapViewAllOrders, CapManageOrders, CapManageClients, CapManageCatalog:
		return i.Role == RoleAdmin
	}
	return false
}
