// Package sales registra las ventas de mostrador con número correlativo.
package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/sequence"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// NumberIssuer emite el siguiente número de una secuencia (sequence.Counter).
type NumberIssuer interface {
	Next(ctx context.Context, name string) (int64, error)
}

// UseCase casos de uso de ventas.
type UseCase struct {
	repo    repository.SaleRepository
	numbers NumberIssuer
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(repo repository.SaleRepository, numbers NumberIssuer, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, numbers: numbers, log: log, now: time.Now}
}

// Create valida el carrito, pide el número de venta y persiste la venta como Concluída.
// Si el contador falla no se persiste nada y se devuelve su error.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta necesita al menos un ítem", domain.ErrInvalidInput)
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: forma de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	items := make([]entity.SaleItem, 0, len(in.Items))
	for i, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: ítem %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: ítem %d con cantidad %d", domain.ErrInvalidInput, i+1, it.Quantity)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
		items = append(items, entity.SaleItem{Name: name, Quantity: it.Quantity, Price: it.Price})
	}
	total := lo.Reduce(items, func(acc decimal.Decimal, it entity.SaleItem, _ int) decimal.Decimal {
		return acc.Add(it.Subtotal())
	}, decimal.Zero)

	number, err := uc.numbers.Next(ctx, sequence.Sale)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleNumber:    number,
		Items:         items,
		PaymentMethod: in.PaymentMethod,
		TotalAmount:   total,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if name := strings.TrimSpace(in.ClientName); name != "" {
		sale.ClientName = &name
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("guardar venta %d: %w", number, err)
	}
	uc.log.Info().Int64("sale_number", number).Str("total", total.StringFixed(2)).Msg("venta registrada")
	return ToResponse(sale), nil
}

// GetByID devuelve nil, nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return ToResponse(s), nil
}

// List devuelve las ventas por número descendente; from/to nil no restringen.
func (uc *UseCase) List(ctx context.Context, from, to *time.Time) ([]dto.SaleResponse, error) {
	sales, err := uc.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return lo.Map(sales, func(s *entity.Sale, _ int) dto.SaleResponse { return *ToResponse(s) }), nil
}

// ListByDateRange filtra por fecha de creación en [from, to], número descendente.
func (uc *UseCase) ListByDateRange(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	sales, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := lo.Filter(sales, func(s *entity.Sale, _ int) bool { return dto.InRange(s.CreatedAt, from, to) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleNumber > out[j].SaleNumber })
	return out, nil
}

// Cancel marca la venta como Cancelada con su motivo. Una venta ya cancelada da domain.ErrConflict.
func (uc *UseCase) Cancel(ctx context.Context, id, reason string) (*dto.SaleResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: el motivo de la cancelación es obligatorio", domain.ErrInvalidInput)
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Status == entity.SaleStatusCancelled {
		return nil, fmt.Errorf("%w: la venta %d ya está cancelada", domain.ErrConflict, s.SaleNumber)
	}
	now := uc.now()
	s.Status = entity.SaleStatusCancelled
	s.CancellationReason = &reason
	s.CancelledAt = &now
	s.UpdatedAt = now
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sale_number", s.SaleNumber).Msg("venta cancelada")
	return ToResponse(s), nil
}

// TotalRevenue suma el total de las ventas concluidas.
func (uc *UseCase) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	sales, err := uc.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Revenue(sales), nil
}

// Revenue suma el total de las ventas concluidas de la lista.
func Revenue(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if s.Status == entity.SaleStatusCompleted {
			total = total.Add(s.TotalAmount)
		}
	}
	return total
}

// ToResponse convierte la entidad a DTO.
func ToResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:         s.ID,
		SaleNumber: s.SaleNumber,
		ClientName: s.ClientName,
		Items: lo.Map(s.Items, func(it entity.SaleItem, _ int) dto.SaleItemResponse {
			return dto.SaleItemResponse{Name: it.Name, Quantity: it.Quantity, Price: it.Price, Subtotal: it.Subtotal()}
		}),
		PaymentMethod:      s.PaymentMethod,
		TotalAmount:        s.TotalAmount,
		Status:             s.Status,
		CancellationReason: s.CancellationReason,
		CancelledAt:        s.CancelledAt,
		CreatedAt:          s.CreatedAt,
	}
}
