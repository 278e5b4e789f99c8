// Package auth gestiona usuarios, credenciales y emisión de tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// MinPasswordLength longitud mínima de la contraseña.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminSeed cuenta administradora inicial.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// AuthUseCase casos de uso de usuarios y login. Los perfiles viven en users
// (respaldados); las credenciales en authAccounts.
type AuthUseCase struct {
	users    repository.UserRepository
	accounts repository.AuthAccountRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. log puede ser nil.
func NewAuthUseCase(users repository.UserRepository, accounts repository.AuthAccountRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{users: users, accounts: accounts, jwtCfg: jwtCfg, log: log}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CreateUser crea la cuenta (bcrypt) y el perfil con el mismo ID.
// domain.ErrEmailAlreadyExists si el email ya tiene cuenta.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: el email es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.AuthAccount{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:        account.ID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role).Msg("usuario creado")
	return toUserResponse(user), nil
}

// List devuelve los perfiles ordenados por nombre.
func (uc *AuthUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
	return lo.Map(users, func(u *entity.User, _ int) dto.UserResponse { return *toUserResponse(u) }), nil
}

// Get devuelve nil, nil si no existe.
func (uc *AuthUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Update edita nombre, email y rol del perfil. Las credenciales no cambian.
func (uc *AuthUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre y email son obligatorios", domain.ErrInvalidInput)
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Email = email
	u.Role = in.Role
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete borra el perfil. La cuenta queda, pero sin perfil no puede iniciar sesión.
func (uc *AuthUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("perfil eliminado")
	return nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Credenciales inválidas dan domain.ErrUnauthorized; cuenta sin perfil, domain.ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accounts.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// EnsureAdmin garantiza que exista un perfil admin. Si falta y hay email configurado,
// crea la cuenta o, si la cuenta ya existe (p. ej. tras un restore), recrea su perfil.
// Devuelve true si creó algo.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return false, err
	}
	if lo.ContainsBy(users, func(u *entity.User) bool { return u.Role == entity.RoleAdmin }) {
		return false, nil
	}
	email := normalizeEmail(seed.Email)
	if email == "" {
		uc.log.Warn().Msg("no hay administrador y ADMIN_EMAIL no está configurado")
		return false, nil
	}

	account, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if account == nil {
		_, err := uc.CreateUser(ctx, dto.CreateUserRequest{
			Name:     seed.Name,
			Email:    email,
			Password: seed.Password,
			Role:     entity.RoleAdmin,
		})
		if err != nil {
			return false, fmt.Errorf("crear administrador: %w", err)
		}
		uc.log.Info().Str("email", email).Msg("administrador inicial creado")
		return true, nil
	}

	now := time.Now()
	profile, err := uc.users.GetByID(ctx, account.ID)
	if err != nil {
		return false, err
	}
	if profile != nil {
		profile.Role = entity.RoleAdmin
		profile.UpdatedAt = now
		err = uc.users.Update(ctx, profile)
	} else {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			name = email
		}
		err = uc.users.Create(ctx, &entity.User{
			ID: account.ID, Name: name, Email: email, Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now,
		})
	}
	if err != nil {
		return false, fmt.Errorf("restablecer perfil administrador: %w", err)
	}
	uc.log.Info().Str("email", email).Msg("perfil administrador restablecido")
	return true, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
