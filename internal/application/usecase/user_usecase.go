package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/auth"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// UserUseCase administra usuarios. El listado se filtra por el alcance
// jerárquico del actor: un gerente ve solo su subárbol.
type UserUseCase struct {
	users    repository.UserRepository
	resolver *access.Resolver
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(users repository.UserRepository, resolver *access.Resolver) *UserUseCase {
	return &UserUseCase{users: users, resolver: resolver}
}

// List devuelve los usuarios dentro del alcance del actor.
func (uc *UserUseCase) List(actor Actor) ([]*dto.UserResponse, error) {
	all, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	scope := uc.resolver.AccessibleIDs(actor.ID)
	out := make([]*dto.UserResponse, 0, len(all))
	for _, u := range all {
		if scope.Contains(u.ID) {
			out = append(out, auth.ToUserResponse(u))
		}
	}
	return out, nil
}

// Create da de alta un usuario: valida, normaliza el rol, verifica que el
// jefe exista y hashea el password con bcrypt.
func (uc *UserUseCase) Create(actor Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: nombre, email, password y rol son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	role, ok := entity.NormalizeRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}
	if in.ReportsTo != nil {
		boss, err := uc.users.GetByID(*in.ReportsTo)
		if err != nil {
			return nil, err
		}
		if boss == nil {
			return nil, fmt.Errorf("%w: el jefe indicado no existe", domain.ErrInvalidInput)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		ReportsTo:    in.ReportsTo,
		Active:       active,
	}
	id, err := uc.users.Create(user)
	if err != nil {
		return nil, err
	}
	created, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(created), nil
}

// Update edita un usuario dentro del alcance jerárquico del actor: el gate de
// rol del router no alcanza, un gerente solo puede editar su propio subárbol.
// Toda escritura de reportsTo pasa por la detección de ciclos: un ciclo en la
// cadena de reporte rompería la resolución jerárquica. Password vacío
// significa no cambiarlo.
func (uc *UserUseCase) Update(actor Actor, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(id) {
		return nil, domain.ErrForbidden
	}

	role := existing.Role
	if in.Role != "" {
		r, ok := entity.NormalizeRole(in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
		}
		role = r
	}

	all, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	if access.WouldCreateCycle(all, id, in.ReportsTo) {
		return nil, domain.ErrReportsToCycle
	}

	hash := existing.PasswordHash
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	active := existing.Active
	if in.Active != nil {
		active = *in.Active
	}
	updated := &entity.User{
		ID:           id,
		Name:         defaultString(in.Name, existing.Name),
		Email:        defaultString(in.Email, existing.Email),
		PasswordHash: hash,
		Role:         role,
		ReportsTo:    in.ReportsTo,
		Active:       active,
	}
	if err := uc.users.Update(updated); err != nil {
		return nil, err
	}
	fresh, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(fresh), nil
}

// Delete elimina un usuario dentro del alcance del actor. La cuenta owner no
// se puede eliminar nunca, sin importar quién lo pida.
func (uc *UserUseCase) Delete(actor Actor, id int64) error {
	existing, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrUserNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(id) {
		return domain.ErrForbidden
	}
	if existing.Role == entity.RoleOwner {
		return domain.ErrOwnerProtected
	}
	return uc.users.Delete(id)
}
