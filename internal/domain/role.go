package domain

// Role is the marketplace-wide simulated authentication level of a session.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleAffiliator Role = "affiliator"
)

// Roles lists every recognized role.
var Roles = []Role{
	RoleGuest,
	RoleUser,
	RoleInstructor,
	RoleAdmin,
	RoleSuperAdmin,
	RoleAffiliator,
}

// ParseRole maps a persisted string onto a Role. Unknown or empty values
// fall back to RoleGuest, so a corrupted role key degrades to an anonymous
// session instead of an error.
func ParseRole(s string) Role {
	for _, r := range Roles {
		if string(r) == s {
			return r
		}
	}
	return RoleGuest
}

// IsAuthenticated reports whether the role represents a logged-in session.
func (r Role) IsAuthenticated() bool {
	return r != RoleGuest && r != ""
}

// RoleChange is the payload delivered on every role mutation.
type RoleChange struct {
	Role     Role
	Previous Role
}

// SessionState is the promotion state of the marketplace session.
type SessionState string

const (
	SessionAnonymous  SessionState = "anonymous"
	SessionIdentified SessionState = "identified"
)

// SessionEvent is an action that triggers a session-state transition.
type SessionEvent string

// EventLogin promotes an anonymous session to an identified one.
const EventLogin SessionEvent = "login"

// SessionTransition defines a valid state change: an event moves a session
// from Src to Dst.
type SessionTransition struct {
	Event SessionEvent
	Src   SessionState
	Dst   SessionState
}

// SessionTransitions defines all valid session-state changes. There is
// deliberately no identified→anonymous edge: logout does not rehydrate a
// guest session, it just lets a fresh identity be minted later.
// This is domain knowledge consumed by the FSM adapter.
var SessionTransitions = []SessionTransition{
	{Event: EventLogin, Src: SessionAnonymous, Dst: SessionIdentified},
}
