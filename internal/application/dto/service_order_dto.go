package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrderRequest alta o edición de una OS. Número y fecha de apertura son del servidor.
type ServiceOrderRequest struct {
	DeliveryForecastDate         string                   `json:"delivery_forecast_date" validate:"omitempty,datetime=2006-01-02"`
	Status                       string                   `json:"status" validate:"required"`
	ResponsibleTechnicianName    string                   `json:"responsible_technician_name" validate:"omitempty,max=200"`
	ClientName                   string                   `json:"client_name" validate:"required,min=1,max=200"`
	ClientCpfCnpj                string                   `json:"client_cpf_cnpj" validate:"omitempty,max=20"`
	ClientPhone                  string                   `json:"client_phone" validate:"omitempty,max=30"`
	ClientEmail                  string                   `json:"client_email" validate:"omitempty,email"`
	DeviceType                   string                   `json:"device_type"`
	DeviceBrandModel             string                   `json:"device_brand_model" validate:"required,min=1,max=200"`
	DeviceImeiSerial             string                   `json:"device_imei_serial" validate:"omitempty,max=100"`
	DeviceColor                  string                   `json:"device_color" validate:"omitempty,max=50"`
	DeviceAccessories            string                   `json:"device_accessories" validate:"omitempty,max=300"`
	ProblemReportedByClient      string                   `json:"problem_reported_by_client" validate:"required,min=1"`
	TechnicalDiagnosis           string                   `json:"technical_diagnosis"`
	InternalObservations         string                   `json:"internal_observations"`
	ServicesPerformedDescription string                   `json:"services_performed_description"`
	PartsUsedDescription         string                   `json:"parts_used_description"`
	ServiceManualValue           decimal.Decimal          `json:"service_manual_value"`
	AdditionalSoldProducts       []SoldProductItemRequest `json:"additional_sold_products" validate:"dive"`
}

// SoldProductItemRequest producto vendido junto con la OS.
type SoldProductItemRequest struct {
	Name      string          `json:"name" validate:"required,max=200"`
	Quantity  int64           `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ServiceOrderFilter filtros del listado y del reporte.
type ServiceOrderFilter struct {
	DateRangeQuery
	Status     string `query:"status"`
	Technician string `query:"technician"`
}

// ServiceOrderResponse salida de una OS.
type ServiceOrderResponse struct {
	ID                           string                    `json:"id"`
	OSNumber                     int64                     `json:"os_number"`
	OpeningDate                  time.Time                 `json:"opening_date"`
	UpdatedAt                    time.Time                 `json:"updated_at"`
	DeliveryForecastDate         *string                   `json:"delivery_forecast_date"`
	Status                       string                    `json:"status"`
	ResponsibleTechnicianName    *string                   `json:"responsible_technician_name"`
	ClientName                   string                    `json:"client_name"`
	ClientCpfCnpj                *string                   `json:"client_cpf_cnpj"`
	ClientPhone                  *string                   `json:"client_phone"`
	ClientEmail                  *string                   `json:"client_email"`
	DeviceType                   *string                   `json:"device_type"`
	DeviceBrandModel             string                    `json:"device_brand_model"`
	DeviceImeiSerial             *string                   `json:"device_imei_serial"`
	DeviceColor                  *string                   `json:"device_color"`
	DeviceAccessories            *string                   `json:"device_accessories"`
	ProblemReportedByClient      string                    `json:"problem_reported_by_client"`
	TechnicalDiagnosis           *string                   `json:"technical_diagnosis"`
	InternalObservations         *string                   `json:"internal_observations"`
	ServicesPerformedDescription *string                   `json:"services_performed_description"`
	PartsUsedDescription         *string                   `json:"parts_used_description"`
	ServiceManualValue           decimal.Decimal           `json:"service_manual_value"`
	AdditionalSoldProducts       []SoldProductItemResponse `json:"additional_sold_products"`
	GrandTotalValue              decimal.Decimal           `json:"grand_total_value"`
}

// SoldProductItemResponse producto vendido con su total.
type SoldProductItemResponse struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
