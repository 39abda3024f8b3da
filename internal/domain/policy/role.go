package policy

type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleBarber, RoleAdmin:
		return true
	}
	return false
}

// CanBeBooked reports whether users with this role take appointments as barber.
func (r Role) CanBeBooked() bool {
	return r == RoleBarber || r == RoleAdmin
}
