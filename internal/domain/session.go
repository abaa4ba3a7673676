package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStaff, RoleAgent, RoleUser:
		return r, true
	}
	return "", false
}

// Session replaces the browser's token/user/role flags. It is a UI
// convenience, not an access-control boundary.
type Session struct {
	Token     string    `json:"token"`
	User      string    `json:"user"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
