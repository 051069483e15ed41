package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User usuario del sistema (admin o cajero) con credenciales hasheadas.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	FullName     string
	Role         string // admin | cashier
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
