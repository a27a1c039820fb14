package models

type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleProvider || r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Is reports whether the actor is id acting in role.
func (a Actor) Is(role Role, id string) bool {
	return a.Role == role && a.ID != "" && a.ID == id
}
