package enums

// Role is the account-level permission tier.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleSuper Role = "super"
)

var ValidRoles = []Role{RoleUser, RoleAdmin, RoleSuper}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool { return contains(ValidRoles, r) }

// CanManage reports whether the role may use admin surfaces.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleSuper
}

func ParseRole(value string) (Role, error) {
	return parse(ValidRoles, value, "role")
}
