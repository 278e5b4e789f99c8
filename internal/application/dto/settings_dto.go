package dto

import "time"

// EstablishmentRequest datos del establecimiento.
type EstablishmentRequest struct {
	BusinessName    string `json:"business_name" validate:"required,min=1,max=200"`
	BusinessAddress string `json:"business_address" validate:"omitempty,max=300"`
	BusinessCnpj    string `json:"business_cnpj" validate:"omitempty,max=20"`
	BusinessPhone   string `json:"business_phone" validate:"omitempty,max=30"`
	BusinessEmail   string `json:"business_email" validate:"omitempty,email"`
}

// EstablishmentResponse salida; UpdatedAt nil si nunca se guardó.
type EstablishmentResponse struct {
	BusinessName    string     `json:"business_name"`
	BusinessAddress string     `json:"business_address"`
	BusinessCnpj    string     `json:"business_cnpj"`
	BusinessPhone   string     `json:"business_phone"`
	BusinessEmail   string     `json:"business_email"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// RestoreResponse resumen de un restore completado.
type RestoreResponse struct {
	Restored map[string]int `json:"restored"`
	Ignored  []string       `json:"ignored"`
}
