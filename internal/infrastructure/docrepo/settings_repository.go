package docrepo

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// establishmentDocID documento de systemSettings con los datos del establecimiento.
const establishmentDocID = "establishment"

// SettingsRepo persiste la configuración del establecimiento.
type SettingsRepo struct {
	store repository.DocumentStore
}

// NewSettingsRepository construye el repositorio.
func NewSettingsRepository(store repository.DocumentStore) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// GetEstablishment devuelve nil, nil si nunca se guardó.
func (r *SettingsRepo) GetEstablishment(ctx context.Context) (*entity.EstablishmentSettings, error) {
	doc, err := r.store.Get(ctx, CollectionSystemSettings, establishmentDocID)
	if err != nil {
		return nil, fmt.Errorf("get establishment: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return &entity.EstablishmentSettings{
		BusinessName:    document.String(doc, "businessName"),
		BusinessAddress: document.String(doc, "businessAddress"),
		BusinessCnpj:    document.String(doc, "businessCnpj"),
		BusinessPhone:   document.String(doc, "businessPhone"),
		BusinessEmail:   document.String(doc, "businessEmail"),
		UpdatedAt:       document.Time(doc, "updatedAt"),
	}, nil
}

// SaveEstablishment reemplaza el documento completo.
func (r *SettingsRepo) SaveEstablishment(ctx context.Context, s *entity.EstablishmentSettings) error {
	err := r.store.Set(ctx, CollectionSystemSettings, establishmentDocID, document.Document{
		"businessName":    s.BusinessName,
		"businessAddress": s.BusinessAddress,
		"businessCnpj":    s.BusinessCnpj,
		"businessPhone":   s.BusinessPhone,
		"businessEmail":   s.BusinessEmail,
		"updatedAt":       s.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("save establishment: %w", err)
	}
	return nil
}
