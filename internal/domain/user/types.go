package user

type Role string

const (
	RoleClient       Role = "client"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleReceptionist, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsElevated reports whether the role may drive reservation lifecycle
// transitions (confirm/cancel/complete) and manage resources.
func (r Role) IsElevated() bool {
	return r == RoleReceptionist || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
