package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
	"github.com/alluma/crm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y verificación de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Una cuenta desactivada retorna ErrForbidden salvo que el request pida
// explícitamente permitir usuarios inactivos.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !in.AllowInactiveUsers && !user.Active {
		return nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Ok:    true,
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Verify valida un token ya parseado por el middleware y devuelve el usuario
// actual desde la base (los claims pueden estar desactualizados).
func (uc *AuthUseCase) Verify(userID int64) (*dto.VerifyResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.VerifyResponse{Ok: true, User: *ToUserResponse(user)}, nil
}

// ToUserResponse proyecta un User a su DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		ReportsTo: u.ReportsTo,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
