package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ExpenseUseCase casos de uso de gastos (cuentas a pagar).
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, now: time.Now}
}

// parsedExpense es la entrada ya validada.
type parsedExpense struct {
	dueDate     time.Time
	status      string
	paymentDate *time.Time
}

func (uc *ExpenseUseCase) parse(in dto.ExpenseRequest) (*parsedExpense, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: la categoría es obligatoria", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	due, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &parsedExpense{dueDate: due, status: in.Status}
	if out.status == "" {
		out.status = entity.ExpenseStatusPending
	}
	if !entity.IsValidExpenseStatus(out.status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	if out.status == entity.ExpenseStatusPaid {
		paid, err := uc.paymentDate(in.PaymentDate)
		if err != nil {
			return nil, err
		}
		out.paymentDate = &paid
	}
	return out, nil
}

// paymentDate interpreta la fecha de pago; vacía = ahora.
func (uc *ExpenseUseCase) paymentDate(s string) (time.Time, error) {
	if s == "" {
		return uc.now(), nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}

// Create registra un gasto. Sin estado queda Pendente.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	p, err := uc.parse(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		DueDate:     p.dueDate,
		Status:      p.status,
		PaymentDate: p.paymentDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetByID devuelve nil, nil si no existe.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List devuelve los gastos por vencimiento descendente, filtrados por q (descripción o categoría).
func (uc *ExpenseUseCase) List(ctx context.Context, q string) ([]dto.ExpenseResponse, error) {
	expenses, err := uc.ListByDateRange(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		if matchesQuery(q, e.Description, e.Category) {
			out = append(out, *toExpenseResponse(e))
		}
	}
	return out, nil
}

// ListByDateRange filtra por vencimiento en [from, to] y ordena por vencimiento descendente.
func (uc *ExpenseUseCase) ListByDateRange(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error) {
	expenses, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if dto.InRange(e.DueDate, from, to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out, nil
}

// Update reemplaza los datos; domain.ErrNotFound si no existe.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	p, err := uc.parse(in)
	if err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	e.Description = strings.TrimSpace(in.Description)
	e.Amount = in.Amount
	e.Category = strings.TrimSpace(in.Category)
	e.DueDate = p.dueDate
	e.Status = p.status
	e.PaymentDate = p.paymentDate
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// ToggleStatus alterna Pendente ↔ Pago. Al pagar fija la fecha de pago (vacía = ahora);
// al volver a Pendente la borra.
func (uc *ExpenseUseCase) ToggleStatus(ctx context.Context, id, paymentDate string) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.Status == entity.ExpenseStatusPaid {
		e.Status = entity.ExpenseStatusPending
		e.PaymentDate = nil
	} else {
		paid, err := uc.paymentDate(paymentDate)
		if err != nil {
			return nil, err
		}
		e.Status = entity.ExpenseStatusPaid
		e.PaymentDate = &paid
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Delete elimina el gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		DueDate:     e.DueDate,
		Status:      e.Status,
		PaymentDate: e.PaymentDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
