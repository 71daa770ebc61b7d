package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleDriver   Role = "DRIVER"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsDriver() bool {
	return p.Role == RoleDriver
}

// CanViewStatistics gates the statistics surface; the detailed permission
// matrix lives with the authorization service, not here.
func (p Principal) CanViewStatistics() bool {
	return !p.IsDriver()
}
