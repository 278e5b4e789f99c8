package entity

import "time"

// Client representa un cliente del establecimiento.
type Client struct {
	ID        string
	Name      string
	CpfCnpj   string // CPF o CNPJ
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
