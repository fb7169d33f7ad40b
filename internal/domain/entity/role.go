package entity

type RoleState int

const (
	// RoleLoading is the zero value so an unset resolution is never read as
	// "resolved, not admin".
	RoleLoading RoleState = iota
	RoleResolved
)

func (s RoleState) String() string {
	if s == RoleResolved {
		return "resolved"
	}
	return "loading"
}

type RoleResolution struct {
	State   RoleState `json:"-"`
	IsAdmin bool      `json:"is_admin"`
}

func ResolvedRole(isAdmin bool) RoleResolution {
	return RoleResolution{State: RoleResolved, IsAdmin: isAdmin}
}

func (r RoleResolution) Resolved() bool {
	return r.State == RoleResolved
}

// GrantsAdmin is true only for a resolved admin.
func (r RoleResolution) GrantsAdmin() bool {
	return r.State == RoleResolved && r.IsAdmin
}
