package user

import "time"

// Staff roles, ordered by privilege. admin can do everything a manager
// can, manager everything a waiter can.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWaiter  = "waiter"
)

var roleRank = map[string]int{
	RoleWaiter:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// ValidRole reports whether r is a known staff role.
func ValidRole(r string) bool {
	_, ok := roleRank[r]
	return ok
}

// RoleAtLeast reports whether role carries at least the privilege of min.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min] && roleRank[role] > 0
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
