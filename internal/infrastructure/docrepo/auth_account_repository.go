package docrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/document"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.AuthAccountRepository = (*AuthAccountRepo)(nil)

// emailIndexPrefix: cada cuenta tiene además un documento índice "email:<email>" → id,
// creado en la misma transacción para que el email sea único.
const emailIndexPrefix = "email:"

// AuthAccountRepo persiste credenciales en la colección authAccounts.
type AuthAccountRepo struct {
	store repository.DocumentStore
}

// NewAuthAccountRepository construye el repositorio de credenciales.
func NewAuthAccountRepository(store repository.DocumentStore) *AuthAccountRepo {
	return &AuthAccountRepo{store: store}
}

// Create guarda la cuenta; domain.ErrEmailAlreadyExists si el email ya está en uso.
func (r *AuthAccountRepo) Create(ctx context.Context, a *entity.AuthAccount) error {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	err := r.store.RunTransaction(ctx, func(tx repository.Transaction) error {
		if err := tx.Create(ctx, CollectionAuthAccounts, emailIndexPrefix+email, document.Document{"accountId": a.ID}); err != nil {
			return err
		}
		return tx.Create(ctx, CollectionAuthAccounts, a.ID, document.Document{
			"email":        email,
			"passwordHash": a.PasswordHash,
			"createdAt":    a.CreatedAt,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert auth account: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *AuthAccountRepo) GetByID(ctx context.Context, id string) (*entity.AuthAccount, error) {
	if strings.HasPrefix(id, emailIndexPrefix) {
		return nil, nil
	}
	doc, err := r.store.Get(ctx, CollectionAuthAccounts, id)
	if err != nil {
		return nil, fmt.Errorf("get auth account: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return &entity.AuthAccount{
		ID:           id,
		Email:        document.String(doc, "email"),
		PasswordHash: document.String(doc, "passwordHash"),
		CreatedAt:    document.Time(doc, "createdAt"),
	}, nil
}

// FindByEmail resuelve el índice de email; nil, nil si no hay cuenta.
func (r *AuthAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.AuthAccount, error) {
	key := emailIndexPrefix + strings.ToLower(strings.TrimSpace(email))
	idx, err := r.store.Get(ctx, CollectionAuthAccounts, key)
	if err != nil {
		return nil, fmt.Errorf("get auth account by email: %w", err)
	}
	if idx == nil {
		return nil, nil
	}
	return r.GetByID(ctx, document.String(idx, "accountId"))
}

// Count devuelve la cantidad de cuentas (sin contar los índices).
func (r *AuthAccountRepo) Count(ctx context.Context) (int, error) {
	ids, err := r.store.ListIDs(ctx, CollectionAuthAccounts)
	if err != nil {
		return 0, fmt.Errorf("count auth accounts: %w", err)
	}
	n := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, emailIndexPrefix) {
			n++
		}
	}
	return n, nil
}
