package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest alta o edición de un gasto. Fechas en YYYY-MM-DD.
type ExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=300"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"required,max=100"`
	DueDate     string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string          `json:"status" validate:"omitempty,oneof=Pendente Pago"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToggleExpenseStatusRequest cambia Pendente ↔ Pago. PaymentDate vacío = hoy.
type ToggleExpenseStatusRequest struct {
	PaymentDate string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	PaymentDate *time.Time      `json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
