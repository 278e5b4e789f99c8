package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta (valores persistidos tal como están en los backups).
const (
	SaleStatusCompleted = "Concluída"
	SaleStatusCancelled = "Cancelada"
)

// Formas de pago aceptadas en el mostrador.
const (
	PaymentCash   = "Dinheiro"
	PaymentCredit = "Cartão de Crédito"
	PaymentDebit  = "Cartão de Débito"
	PaymentPix    = "Pix"
)

// PaymentMethods en el orden en que se muestran.
var PaymentMethods = []string{PaymentCash, PaymentCredit, PaymentDebit, PaymentPix}

// Sale representa una venta de mostrador. SaleNumber viene del contador "sale".
type Sale struct {
	ID                 string
	SaleNumber         int64
	ClientName         *string
	Items              []SaleItem
	PaymentMethod      string
	TotalAmount        decimal.Decimal
	Status             string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SaleItem línea del carrito.
type SaleItem struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal // precio unitario
}

// Subtotal = Quantity × Price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// IsValidPaymentMethod valida la forma de pago.
func IsValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}
