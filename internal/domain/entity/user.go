package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User es el perfil de un usuario del sistema. El ID es el de su AuthAccount.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string // admin, user
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthAccount son las credenciales de acceso. Viven fuera de las colecciones respaldadas,
// igual que en un proveedor de autenticación externo.
type AuthAccount struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}

// IsValidRole valida el rol.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}
