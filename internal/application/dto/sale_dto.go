package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest venta de mostrador. El número y el total los calcula el servidor.
type CreateSaleRequest struct {
	ClientName    string            `json:"client_name" validate:"omitempty,max=200"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
}

// SaleItemRequest línea del carrito.
type SaleItemRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Quantity int64           `json:"quantity" validate:"min=1"`
	Price    decimal.Decimal `json:"price"`
}

// CancelSaleRequest motivo obligatorio de la cancelación.
type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                 string             `json:"id"`
	SaleNumber         int64              `json:"sale_number"`
	ClientName         *string            `json:"client_name"`
	Items              []SaleItemResponse `json:"items"`
	PaymentMethod      string             `json:"payment_method"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	Status             string             `json:"status"`
	CancellationReason *string            `json:"cancellation_reason"`
	CancelledAt        *time.Time         `json:"cancelled_at"`
	CreatedAt          time.Time          `json:"created_at"`
}

// SaleItemResponse línea de venta con subtotal.
type SaleItemResponse struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
