package entity

// Roles válidos para Operator.
const (
	RoleAdmin       = "admin"
	RoleDespachador = "despachador"
)

// Operator usuario que opera el escáner o el panel de administración.
// Se configura por entorno; no hay tabla de usuarios.
type Operator struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin, despachador
}
