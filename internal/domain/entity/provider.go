package entity

import "time"

// Provider representa un proveedor de piezas o mercadería.
type Provider struct {
	ID            string
	Name          string
	ContactPerson string
	Cnpj          string
	Phone         string
	Email         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
