package domain

import "github.com/shopspring/decimal"

type Role int

const (
	RoleStudent Role = iota
	RoleCurator
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleCurator:
		return "curator"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// CanGrade reports whether the role may override answer scores.
func (r Role) CanGrade() bool {
	return r == RoleCurator || r == RoleAdmin
}

type User struct {
	ID                int             `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Phone             string          `json:"phone,omitempty"`
	Role              Role            `json:"role"`
	Coins             decimal.Decimal `json:"coins"`
	IsOfflineEligible bool            `json:"is_offline"`
}

func (u User) Name() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Session is persisted verbatim under the "session" storage key; the JSON
// shape matches the login response.
type Session struct {
	Token string `json:"key"`
	User  User   `json:"user"`
}
