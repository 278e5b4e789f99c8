package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AuthAccountRepository define el puerto de persistencia de credenciales (DIP).
type AuthAccountRepository interface {
	Create(ctx context.Context, account *entity.AuthAccount) error
	GetByID(ctx context.Context, id string) (*entity.AuthAccount, error)
	// FindByEmail devuelve nil, nil si no hay cuenta con ese email.
	FindByEmail(ctx context.Context, email string) (*entity.AuthAccount, error)
	Count(ctx context.Context) (int, error)
}

// SettingsRepository persiste los datos del establecimiento.
type SettingsRepository interface {
	// GetEstablishment devuelve nil, nil si nunca se guardaron.
	GetEstablishment(ctx context.Context) (*entity.EstablishmentSettings, error)
	SaveEstablishment(ctx context.Context, s *entity.EstablishmentSettings) error
}
