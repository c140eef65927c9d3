package entity

import "time"

// Supplier representa un proveedor del directorio.
// NIT es el identificador tributario, único en todo el directorio.
type Supplier struct {
	ID        string
	Company   string // razón social
	NIT       string
	Address   string
	City      string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
