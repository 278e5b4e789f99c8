package docrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository       = (*Repository[entity.Client])(nil)
	_ repository.ProductRepository      = (*Repository[entity.Product])(nil)
	_ repository.ProviderRepository     = (*Repository[entity.Provider])(nil)
	_ repository.ExpenseRepository      = (*Repository[entity.Expense])(nil)
	_ repository.SaleRepository         = (*Repository[entity.Sale])(nil)
	_ repository.ServiceOrderRepository = (*Repository[entity.ServiceOrder])(nil)
	_ repository.UserRepository         = (*Repository[entity.User])(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de valores
// ──────────────────────────────────────────────────────────────────────────────

// money guarda montos como número JSON, igual que los datos existentes.
func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

func moneyField(d document.Document, key string) decimal.Decimal {
	return decimal.NewFromFloat(document.Float(d, key))
}

func optString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

// NewClientRepository construye el repositorio de clientes.
func NewClientRepository(store repository.DocumentStore) *Repository[entity.Client] {
	return newRepository(store, CollectionClients, mapper[entity.Client]{
		id: func(c *entity.Client) string { return c.ID },
		toDoc: func(c *entity.Client) document.Document {
			return document.Document{
				"name":      c.Name,
				"cpfCnpj":   c.CpfCnpj,
				"phone":     c.Phone,
				"email":     c.Email,
				"address":   c.Address,
				"createdAt": c.CreatedAt,
				"updatedAt": c.UpdatedAt,
			}
		},
		fromDoc: func(id string, d document.Document) *entity.Client {
			return &entity.Client{
				ID:        id,
				Name:      document.String(d, "name"),
				CpfCnpj:   document.String(d, "cpfCnpj"),
				Phone:     document.String(d, "phone"),
				Email:     document.String(d, "email"),
				Address:   document.String(d, "address"),
				CreatedAt: document.Time(d, "createdAt"),
				UpdatedAt: document.Time(d, "updatedAt"),
			}
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

// NewProductRepository construye el repositorio de productos.
func NewProductRepository(store repository.DocumentStore) *Repository[entity.Product] {
	return newRepository(store, CollectionProducts, mapper[entity.Product]{
		id: func(p *entity.Product) string { return p.ID },
		toDoc: func(p *entity.Product) document.Document {
			return document.Document{
				"name":        p.Name,
				"description": p.Description,
				"price":       money(p.Price),
				"stock":       p.Stock,
				"createdAt":   p.CreatedAt,
				"updatedAt":   p.UpdatedAt,
			}
		},
		fromDoc: func(id string, d document.Document) *entity.Product {
			return &entity.Product{
				ID:          id,
				Name:        document.String(d, "name"),
				Description: document.String(d, "description"),
				Price:       moneyField(d, "price"),
				Stock:       document.Int(d, "stock"),
				CreatedAt:   document.Time(d, "createdAt"),
				UpdatedAt:   document.Time(d, "updatedAt"),
			}
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

// NewProviderRepository construye el repositorio de proveedores.
func NewProviderRepository(store repository.DocumentStore) *Repository[entity.Provider] {
	return newRepository(store, CollectionProviders, mapper[entity.Provider]{
		id: func(p *entity.Provider) string { return p.ID },
		toDoc: func(p *entity.Provider) document.Document {
			return document.Document{
				"name":          p.Name,
				"contactPerson": p.ContactPerson,
				"cnpj":          p.Cnpj,
				"phone":         p.Phone,
				"email":         p.Email,
				"address":       p.Address,
				"createdAt":     p.CreatedAt,
				"updatedAt":     p.UpdatedAt,
			}
		},
		fromDoc: func(id string, d document.Document) *entity.Provider {
			return &entity.Provider{
				ID:            id,
				Name:          document.String(d, "name"),
				ContactPerson: document.String(d, "contactPerson"),
				Cnpj:          document.String(d, "cnpj"),
				Phone:         document.String(d, "phone"),
				Email:         document.String(d, "email"),
				Address:       document.String(d, "address"),
				CreatedAt:     document.Time(d, "createdAt"),
				UpdatedAt:     document.Time(d, "updatedAt"),
			}
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Despesas
// ──────────────────────────────────────────────────────────────────────────────

// NewExpenseRepository construye el repositorio de gastos.
func NewExpenseRepository(store repository.DocumentStore) *Repository[entity.Expense] {
	return newRepository(store, CollectionExpenses, mapper[entity.Expense]{
		id: func(e *entity.Expense) string { return e.ID },
		toDoc: func(e *entity.Expense) document.Document {
			return document.Document{
				"description": e.Description,
				"amount":      money(e.Amount),
				"category":    e.Category,
				"dueDate":     e.DueDate,
				"status":      e.Status,
				"paymentDate": optTime(e.PaymentDate),
				"createdAt":   e.CreatedAt,
				"updatedAt":   e.UpdatedAt,
			}
		},
		fromDoc: func(id string, d document.Document) *entity.Expense {
			status := document.String(d, "status")
			if status == "" {
				status = entity.ExpenseStatusPending
			}
			return &entity.Expense{
				ID:          id,
				Description: document.String(d, "description"),
				Amount:      moneyField(d, "amount"),
				Category:    document.String(d, "category"),
				DueDate:     document.Time(d, "dueDate"),
				Status:      status,
				PaymentDate: document.TimePtr(d, "paymentDate"),
				CreatedAt:   document.Time(d, "createdAt"),
				UpdatedAt:   document.Time(d, "updatedAt"),
			}
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// NewSaleRepository construye el repositorio de ventas.
func NewSaleRepository(store repository.DocumentStore) *Repository[entity.Sale] {
	return newRepository(store, CollectionSales, mapper[entity.Sale]{
		id:      func(s *entity.Sale) string { return s.ID },
		toDoc:   saleToDoc,
		fromDoc: saleFromDoc,
	})
}

func saleToDoc(s *entity.Sale) document.Document {
	items := make([]any, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, map[string]any{
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    money(it.Price),
		})
	}
	return document.Document{
		"saleNumber":         s.SaleNumber,
		"clientName":         optString(s.ClientName),
		"items":              items,
		"paymentMethod":      s.PaymentMethod,
		"totalAmount":        money(s.TotalAmount),
		"status":             s.Status,
		"cancellationReason": optString(s.CancellationReason),
		"cancelledAt":        optTime(s.CancelledAt),
		"createdAt":          s.CreatedAt,
		"updatedAt":          s.UpdatedAt,
	}
}

func saleFromDoc(id string, d document.Document) *entity.Sale {
	var items []entity.SaleItem
	for _, raw := range document.Slice(d, "items") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, entity.SaleItem{
			Name:     document.String(m, "name"),
			Quantity: document.Int(m, "quantity"),
			Price:    moneyField(m, "price"),
		})
	}
	status := document.String(d, "status")
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	return &entity.Sale{
		ID:                 id,
		SaleNumber:         document.Int(d, "saleNumber"),
		ClientName:         document.StringPtr(d, "clientName"),
		Items:              items,
		PaymentMethod:      document.String(d, "paymentMethod"),
		TotalAmount:        moneyField(d, "totalAmount"),
		Status:             status,
		CancellationReason: document.StringPtr(d, "cancellationReason"),
		CancelledAt:        document.TimePtr(d, "cancelledAt"),
		CreatedAt:          document.Time(d, "createdAt"),
		UpdatedAt:          document.Time(d, "updatedAt"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de servicio
// ──────────────────────────────────────────────────────────────────────────────

// NewServiceOrderRepository construye el repositorio de órdenes de servicio.
func NewServiceOrderRepository(store repository.DocumentStore) *Repository[entity.ServiceOrder] {
	return newRepository(store, CollectionServiceOrders, mapper[entity.ServiceOrder]{
		id:      func(o *entity.ServiceOrder) string { return o.ID },
		toDoc:   serviceOrderToDoc,
		fromDoc: serviceOrderFromDoc,
	})
}

func serviceOrderToDoc(o *entity.ServiceOrder) document.Document {
	products := make([]any, 0, len(o.AdditionalSoldProducts))
	for _, p := range o.AdditionalSoldProducts {
		products = append(products, map[string]any{
			"name":       p.Name,
			"quantity":   p.Quantity,
			"unitPrice":  money(p.UnitPrice),
			"totalPrice": money(p.TotalPrice),
		})
	}
	return document.Document{
		"osNumber":                     o.OSNumber,
		"openingDate":                  o.OpeningDate,
		"updatedAt":                    o.UpdatedAt,
		"deliveryForecastDate":         optString(o.DeliveryForecastDate),
		"status":                       o.Status,
		"responsibleTechnicianName":    optString(o.ResponsibleTechnician),
		"clientName":                   o.ClientName,
		"clientCpfCnpj":                optString(o.ClientCpfCnpj),
		"clientPhone":                  optString(o.ClientPhone),
		"clientEmail":                  optString(o.ClientEmail),
		"deviceType":                   optString(o.DeviceType),
		"deviceBrandModel":             o.DeviceBrandModel,
		"deviceImeiSerial":             optString(o.DeviceImeiSerial),
		"deviceColor":                  optString(o.DeviceColor),
		"deviceAccessories":            optString(o.DeviceAccessories),
		"problemReportedByClient":      o.ProblemReportedByClient,
		"technicalDiagnosis":           optString(o.TechnicalDiagnosis),
		"internalObservations":         optString(o.InternalObservations),
		"servicesPerformedDescription": optString(o.ServicesPerformedDescription),
		"partsUsedDescription":         optString(o.PartsUsedDescription),
		"serviceManualValue":           money(o.ServiceManualValue),
		"additionalSoldProducts":       products,
		"grandTotalValue":              money(o.GrandTotalValue),
	}
}

func serviceOrderFromDoc(id string, d document.Document) *entity.ServiceOrder {
	var products []entity.SoldProductItem
	for _, raw := range document.Slice(d, "additionalSoldProducts") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		products = append(products, entity.SoldProductItem{
			Name:       document.String(m, "name"),
			Quantity:   document.Int(m, "quantity"),
			UnitPrice:  moneyField(m, "unitPrice"),
			TotalPrice: moneyField(m, "totalPrice"),
		})
	}
	status := document.String(d, "status")
	if status == "" {
		status = entity.OSStatusOpen
	}
	return &entity.ServiceOrder{
		ID:                           id,
		OSNumber:                     document.Int(d, "osNumber"),
		OpeningDate:                  document.Time(d, "openingDate"),
		UpdatedAt:                    document.Time(d, "updatedAt"),
		DeliveryForecastDate:         document.StringPtr(d, "deliveryForecastDate"),
		Status:                       status,
		ResponsibleTechnician:        document.StringPtr(d, "responsibleTechnicianName"),
		ClientName:                   document.String(d, "clientName"),
		ClientCpfCnpj:                document.StringPtr(d, "clientCpfCnpj"),
		ClientPhone:                  document.StringPtr(d, "clientPhone"),
		ClientEmail:                  document.StringPtr(d, "clientEmail"),
		DeviceType:                   document.StringPtr(d, "deviceType"),
		DeviceBrandModel:             document.String(d, "deviceBrandModel"),
		DeviceImeiSerial:             document.StringPtr(d, "deviceImeiSerial"),
		DeviceColor:                  document.StringPtr(d, "deviceColor"),
		DeviceAccessories:            document.StringPtr(d, "deviceAccessories"),
		ProblemReportedByClient:      document.String(d, "problemReportedByClient"),
		TechnicalDiagnosis:           document.StringPtr(d, "technicalDiagnosis"),
		InternalObservations:         document.StringPtr(d, "internalObservations"),
		ServicesPerformedDescription: document.StringPtr(d, "servicesPerformedDescription"),
		PartsUsedDescription:         document.StringPtr(d, "partsUsedDescription"),
		ServiceManualValue:           moneyField(d, "serviceManualValue"),
		AdditionalSoldProducts:       products,
		GrandTotalValue:              moneyField(d, "grandTotalValue"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios (perfiles)
// ──────────────────────────────────────────────────────────────────────────────

// NewUserRepository construye el repositorio de perfiles de usuario.
func NewUserRepository(store repository.DocumentStore) *Repository[entity.User] {
	return newRepository(store, CollectionUsers, mapper[entity.User]{
		id: func(u *entity.User) string { return u.ID },
		toDoc: func(u *entity.User) document.Document {
			return document.Document{
				"name":      u.Name,
				"email":     u.Email,
				"role":      u.Role,
				"createdAt": u.CreatedAt,
				"updatedAt": u.UpdatedAt,
			}
		},
		fromDoc: func(id string, d document.Document) *entity.User {
			role := document.String(d, "role")
			if role == "" {
				role = entity.RoleUser
			}
			return &entity.User{
				ID:        id,
				Name:      document.String(d, "name"),
				Email:     document.String(d, "email"),
				Role:      role,
				CreatedAt: document.Time(d, "createdAt"),
				UpdatedAt: document.Time(d, "updatedAt"),
			}
		},
	})
}
