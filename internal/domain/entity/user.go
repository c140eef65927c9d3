package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin       = "admin"
	RoleComprador   = "comprador"   // crea órdenes y gestiona proveedores
	RoleAlmacenista = "almacenista" // registra movimientos de stock
)

// User usuario de la aplicación. PasswordHash es bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
