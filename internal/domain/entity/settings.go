package entity

import "time"

// EstablishmentSettings datos del establecimiento usados en comprobantes y reportes.
type EstablishmentSettings struct {
	BusinessName    string
	BusinessAddress string
	BusinessCnpj    string
	BusinessPhone   string
	BusinessEmail   string
	UpdatedAt       time.Time
}
