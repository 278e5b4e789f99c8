package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// SettingsUseCase lee y guarda los datos del establecimiento.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// GetEstablishment devuelve un documento vacío si nunca se guardó.
func (uc *SettingsUseCase) GetEstablishment(ctx context.Context) (*dto.EstablishmentResponse, error) {
	s, err := uc.repo.GetEstablishment(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.EstablishmentResponse{}, nil
	}
	return toEstablishmentResponse(s), nil
}

// SaveEstablishment reemplaza los datos del establecimiento.
func (uc *SettingsUseCase) SaveEstablishment(ctx context.Context, in dto.EstablishmentRequest) (*dto.EstablishmentResponse, error) {
	name := strings.TrimSpace(in.BusinessName)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del establecimiento es obligatorio", domain.ErrInvalidInput)
	}
	s := &entity.EstablishmentSettings{
		BusinessName:    name,
		BusinessAddress: strings.TrimSpace(in.BusinessAddress),
		BusinessCnpj:    strings.TrimSpace(in.BusinessCnpj),
		BusinessPhone:   strings.TrimSpace(in.BusinessPhone),
		BusinessEmail:   strings.TrimSpace(in.BusinessEmail),
		UpdatedAt:       time.Now(),
	}
	if err := uc.repo.SaveEstablishment(ctx, s); err != nil {
		return nil, err
	}
	return toEstablishmentResponse(s), nil
}

func toEstablishmentResponse(s *entity.EstablishmentSettings) *dto.EstablishmentResponse {
	out := &dto.EstablishmentResponse{
		BusinessName:    s.BusinessName,
		BusinessAddress: s.BusinessAddress,
		BusinessCnpj:    s.BusinessCnpj,
		BusinessPhone:   s.BusinessPhone,
		BusinessEmail:   s.BusinessEmail,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
