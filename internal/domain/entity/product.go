package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold: a partir de esta cantidad (inclusive) el producto se reporta con stock bajo.
const LowStockThreshold = 5

// Product representa un producto vendido en el mostrador.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock: con stock pero en o por debajo del umbral.
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= LowStockThreshold
}

// IsOutOfStock indica stock agotado.
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}
