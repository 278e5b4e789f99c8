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

// ProviderUseCase casos de uso CRUD para proveedores.
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

// Create registra un proveedor.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Provider{ID: uuid.New().String(), CreatedAt: now}
	applyProvider(p, in, now)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// GetByID devuelve nil, nil si no existe.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// List devuelve los proveedores por nombre, filtrados por q.
func (uc *ProviderUseCase) List(ctx context.Context, q string) ([]dto.ProviderResponse, error) {
	providers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(providers, func(i, j int) bool {
		return foldText(providers[i].Name) < foldText(providers[j].Name)
	})
	out := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		if matchesQuery(q, p.Name, p.ContactPerson, p.Cnpj, p.Email) {
			out = append(out, *toProviderResponse(p))
		}
	}
	return out, nil
}

// Update reemplaza los datos; domain.ErrNotFound si no existe.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	applyProvider(p, in, time.Now())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// Delete elimina el proveedor.
func (uc *ProviderUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyProvider(p *entity.Provider, in dto.ProviderRequest, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.ContactPerson = strings.TrimSpace(in.ContactPerson)
	p.Cnpj = strings.TrimSpace(in.Cnpj)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Email = strings.TrimSpace(in.Email)
	p.Address = strings.TrimSpace(in.Address)
	p.UpdatedAt = now
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:            p.ID,
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Cnpj:          p.Cnpj,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
