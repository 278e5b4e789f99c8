package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una despesa (valores persistidos tal como están en los backups).
const (
	ExpenseStatusPending = "Pendente"
	ExpenseStatusPaid    = "Pago"
)

// Expense representa un gasto del establecimiento.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	DueDate     time.Time
	Status      string
	PaymentDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidExpenseStatus valida el estado.
func IsValidExpenseStatus(s string) bool {
	return s == ExpenseStatusPending || s == ExpenseStatusPaid
}
