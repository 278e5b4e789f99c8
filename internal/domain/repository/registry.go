package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Registry es el puerto de persistencia CRUD de una colección de entidades.
// GetByID devuelve nil, nil si no existe.
type Registry[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

// Puertos por entidad.
type (
	ClientRepository       = Registry[entity.Client]
	ProductRepository      = Registry[entity.Product]
	ProviderRepository     = Registry[entity.Provider]
	ExpenseRepository      = Registry[entity.Expense]
	SaleRepository         = Registry[entity.Sale]
	ServiceOrderRepository = Registry[entity.ServiceOrder]
	UserRepository         = Registry[entity.User]
)
