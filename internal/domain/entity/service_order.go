package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de servicio (OS).
const (
	OSStatusOpen        = "Aberta"
	OSStatusInProgress  = "Em andamento"
	OSStatusWaitingPart = "Aguardando peça"
	OSStatusCompleted   = "Concluída"
	OSStatusDelivered   = "Entregue"
	OSStatusCancelled   = "Cancelada"
)

// OSStatuses todos los estados válidos.
var OSStatuses = []string{
	OSStatusOpen, OSStatusInProgress, OSStatusWaitingPart,
	OSStatusCompleted, OSStatusDelivered, OSStatusCancelled,
}

// OSOpenStatuses estados que cuentan como OS abierta en el dashboard.
var OSOpenStatuses = []string{OSStatusOpen, OSStatusInProgress, OSStatusWaitingPart}

// OSRevenueStatuses estados cuyo valor cuenta como ingreso.
var OSRevenueStatuses = []string{OSStatusCompleted, OSStatusDelivered}

// Tipos de aparato.
const (
	DeviceCellphone = "Celular"
	DeviceNotebook  = "Notebook"
	DeviceTablet    = "Tablet"
	DeviceBoard     = "Placa"
	DeviceOther     = "Outro"
)

// DeviceTypes todos los tipos válidos.
var DeviceTypes = []string{DeviceCellphone, DeviceNotebook, DeviceTablet, DeviceBoard, DeviceOther}

// ServiceOrder representa una orden de reparación. OSNumber viene del contador "service-order".
type ServiceOrder struct {
	ID                    string
	OSNumber              int64
	OpeningDate           time.Time
	UpdatedAt             time.Time
	DeliveryForecastDate  *string // fecha YYYY-MM-DD tal como la captura el formulario
	Status                string
	ResponsibleTechnician *string

	ClientName    string
	ClientCpfCnpj *string
	ClientPhone   *string
	ClientEmail   *string

	DeviceType        *string
	DeviceBrandModel  string
	DeviceImeiSerial  *string
	DeviceColor       *string
	DeviceAccessories *string

	ProblemReportedByClient      string
	TechnicalDiagnosis           *string
	InternalObservations         *string
	ServicesPerformedDescription *string
	PartsUsedDescription         *string

	ServiceManualValue     decimal.Decimal
	AdditionalSoldProducts []SoldProductItem
	GrandTotalValue        decimal.Decimal
}

// SoldProductItem producto vendido junto con la OS.
type SoldProductItem struct {
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// IsValidOSStatus valida el estado.
func IsValidOSStatus(s string) bool {
	return contains(OSStatuses, s)
}

// IsValidDeviceType valida el tipo de aparato.
func IsValidDeviceType(s string) bool {
	return contains(DeviceTypes, s)
}

// IsOpen indica si la OS sigue en curso.
func (o *ServiceOrder) IsOpen() bool {
	return contains(OSOpenStatuses, o.Status)
}

// CountsAsRevenue indica si el valor de la OS ya es ingreso.
func (o *ServiceOrder) CountsAsRevenue() bool {
	return contains(OSRevenueStatuses, o.Status)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
