// Package serviceorder gestiona las órdenes de servicio (OS) del taller.
package serviceorder

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

// Filter criterios de ListFiltered; campos vacíos o nil no restringen.
type Filter struct {
	From       *time.Time
	To         *time.Time
	Status     string
	Technician string
}

// UseCase casos de uso de órdenes de servicio.
type UseCase struct {
	repo    repository.ServiceOrderRepository
	numbers NumberIssuer
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(repo repository.ServiceOrderRepository, numbers NumberIssuer, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, numbers: numbers, log: log, now: time.Now}
}

// Create valida, pide el número de OS y la persiste. Si el contador falla no se guarda nada.
func (uc *UseCase) Create(ctx context.Context, in dto.ServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	number, err := uc.numbers.Next(ctx, sequence.ServiceOrder)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	o := &entity.ServiceOrder{
		ID:          uuid.New().String(),
		OSNumber:    number,
		OpeningDate: now,
	}
	apply(o, in, now)
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("guardar OS %d: %w", number, err)
	}
	uc.log.Info().Int64("os_number", number).Str("status", o.Status).Msg("OS abierta")
	return ToResponse(o), nil
}

// GetByID devuelve nil, nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ServiceOrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// List devuelve todas las OS por número descendente.
func (uc *UseCase) List(ctx context.Context) ([]dto.ServiceOrderResponse, error) {
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OSNumber > orders[j].OSNumber })
	return lo.Map(orders, func(o *entity.ServiceOrder, _ int) dto.ServiceOrderResponse { return *ToResponse(o) }), nil
}

// Update reemplaza los datos editables. Número y fecha de apertura no cambian.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	apply(o, in, uc.now())
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// Delete elimina la OS.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ListFiltered filtra por fecha de apertura, estado y técnico; ordena por apertura descendente.
func (uc *UseCase) ListFiltered(ctx context.Context, f Filter) ([]*entity.ServiceOrder, error) {
	if f.Status != "" && !entity.IsValidOSStatus(f.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, f.Status)
	}
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	tech := strings.ToLower(strings.TrimSpace(f.Technician))
	out := lo.Filter(orders, func(o *entity.ServiceOrder, _ int) bool {
		if !dto.InRange(o.OpeningDate, f.From, f.To) {
			return false
		}
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if tech != "" && (o.ResponsibleTechnician == nil || !strings.Contains(strings.ToLower(*o.ResponsibleTechnician), tech)) {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].OpeningDate.After(out[j].OpeningDate) })
	return out, nil
}

// CountOpen cuenta las OS en Aberta, Em andamento o Aguardando peça.
func (uc *UseCase) CountOpen(ctx context.Context) (int, error) {
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return lo.CountBy(orders, (*entity.ServiceOrder).IsOpen), nil
}

// CompletedRevenue suma el total de las OS Concluída o Entregue.
func (uc *UseCase) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Revenue(orders), nil
}

// Revenue suma el total de las OS que cuentan como ingreso.
func Revenue(orders []*entity.ServiceOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.CountsAsRevenue() {
			total = total.Add(o.GrandTotalValue)
		}
	}
	return total
}

// GrandTotal = valor manual del servicio + suma de los productos vendidos.
func GrandTotal(manual decimal.Decimal, products []entity.SoldProductItem) decimal.Decimal {
	return lo.Reduce(products, func(acc decimal.Decimal, p entity.SoldProductItem, _ int) decimal.Decimal {
		return acc.Add(p.TotalPrice)
	}, manual)
}

func validate(in dto.ServiceOrderRequest) error {
	switch {
	case strings.TrimSpace(in.ClientName) == "":
		return fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(in.DeviceBrandModel) == "":
		return fmt.Errorf("%w: marca/modelo del aparato es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(in.ProblemReportedByClient) == "":
		return fmt.Errorf("%w: el problema relatado es obligatorio", domain.ErrInvalidInput)
	case !entity.IsValidOSStatus(in.Status):
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	case in.DeviceType != "" && !entity.IsValidDeviceType(in.DeviceType):
		return fmt.Errorf("%w: tipo de aparato %q", domain.ErrInvalidInput, in.DeviceType)
	case in.ServiceManualValue.IsNegative():
		return fmt.Errorf("%w: el valor del servicio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.DeliveryForecastDate != "" {
		if _, err := dto.ParseDate(in.DeliveryForecastDate); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	for i, p := range in.AdditionalSoldProducts {
		if strings.TrimSpace(p.Name) == "" || p.Quantity < 1 || p.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: producto %d inválido", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// apply copia los campos editables y recalcula los totales.
func apply(o *entity.ServiceOrder, in dto.ServiceOrderRequest, now time.Time) {
	o.UpdatedAt = now
	o.DeliveryForecastDate = optional(in.DeliveryForecastDate)
	o.Status = in.Status
	o.ResponsibleTechnician = optional(in.ResponsibleTechnicianName)
	o.ClientName = strings.TrimSpace(in.ClientName)
	o.ClientCpfCnpj = optional(in.ClientCpfCnpj)
	o.ClientPhone = optional(in.ClientPhone)
	o.ClientEmail = optional(in.ClientEmail)
	o.DeviceType = optional(in.DeviceType)
	o.DeviceBrandModel = strings.TrimSpace(in.DeviceBrandModel)
	o.DeviceImeiSerial = optional(in.DeviceImeiSerial)
	o.DeviceColor = optional(in.DeviceColor)
	o.DeviceAccessories = optional(in.DeviceAccessories)
	o.ProblemReportedByClient = strings.TrimSpace(in.ProblemReportedByClient)
	o.TechnicalDiagnosis = optional(in.TechnicalDiagnosis)
	o.InternalObservations = optional(in.InternalObservations)
	o.ServicesPerformedDescription = optional(in.ServicesPerformedDescription)
	o.PartsUsedDescription = optional(in.PartsUsedDescription)
	o.ServiceManualValue = in.ServiceManualValue
	o.AdditionalSoldProducts = lo.Map(in.AdditionalSoldProducts, func(p dto.SoldProductItemRequest, _ int) entity.SoldProductItem {
		return entity.SoldProductItem{
			Name:       strings.TrimSpace(p.Name),
			Quantity:   p.Quantity,
			UnitPrice:  p.UnitPrice,
			TotalPrice: p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity)),
		}
	})
	o.GrandTotalValue = GrandTotal(o.ServiceManualValue, o.AdditionalSoldProducts)
}

// optional: cadena vacía se guarda como null.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ToResponse convierte la entidad a DTO.
func ToResponse(o *entity.ServiceOrder) *dto.ServiceOrderResponse {
	return &dto.ServiceOrderResponse{
		ID:                           o.ID,
		OSNumber:                     o.OSNumber,
		OpeningDate:                  o.OpeningDate,
		UpdatedAt:                    o.UpdatedAt,
		DeliveryForecastDate:         o.DeliveryForecastDate,
		Status:                       o.Status,
		ResponsibleTechnicianName:    o.ResponsibleTechnician,
		ClientName:                   o.ClientName,
		ClientCpfCnpj:                o.ClientCpfCnpj,
		ClientPhone:                  o.ClientPhone,
		ClientEmail:                  o.ClientEmail,
		DeviceType:                   o.DeviceType,
		DeviceBrandModel:             o.DeviceBrandModel,
		DeviceImeiSerial:             o.DeviceImeiSerial,
		DeviceColor:                  o.DeviceColor,
		DeviceAccessories:            o.DeviceAccessories,
		ProblemReportedByClient:      o.ProblemReportedByClient,
		TechnicalDiagnosis:           o.TechnicalDiagnosis,
		InternalObservations:         o.InternalObservations,
		ServicesPerformedDescription: o.ServicesPerformedDescription,
		PartsUsedDescription:         o.PartsUsedDescription,
		ServiceManualValue:           o.ServiceManualValue,
		AdditionalSoldProducts: lo.Map(o.AdditionalSoldProducts, func(p entity.SoldProductItem, _ int) dto.SoldProductItemResponse {
			return dto.SoldProductItemResponse{Name: p.Name, Quantity: p.Quantity, UnitPrice: p.UnitPrice, TotalPrice: p.TotalPrice}
		}),
		GrandTotalValue: o.GrandTotalValue,
	}
}
