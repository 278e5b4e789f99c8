package dto

import "time"

// ClientRequest alta o edición de un cliente.
type ClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	CpfCnpj string `json:"cpf_cnpj" validate:"omitempty,max=20"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CpfCnpj   string    `json:"cpf_cnpj"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
