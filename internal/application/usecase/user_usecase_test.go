package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/pkg/logger"
)

type userFixture struct {
	uc    *usecase.UserUseCase
	users *fakeUserRepo
}

func newUserFixture() *userFixture {
	users := newFakeUserRepo(
		testUser(1, "Dueño", entity.RoleOwner, 0),
		testUser(3, "Roberto", entity.RoleGerente, 1),
		testUser(4, "Super A", entity.RoleSupervisor, 3),
		testUser(6, "Vende 6", entity.RoleVendedor, 4),
		testUser(8, "Vende 8", entity.RoleVendedor, 1),
	)
	resolver := access.NewResolver(users, logger.Nop())
	return &userFixture{uc: usecase.NewUserUseCase(users, resolver), users: users}
}

func TestUserList_FiltraPorAlcance(t *testing.T) {
	f := newUserFixture()

	visibles, err := f.uc.List(actorGerente)
	require.NoError(t, err)

	ids := make([]int64, 0, len(visibles))
	for _, u := range visibles {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []int64{3, 4, 6}, ids,
		"el gerente no debe ver ni al owner ni al vendedor 8 de otra rama")
}

func TestUserCreate_HasheaPasswordYNormalizaRol(t *testing.T) {
	f := newUserFixture()

	// "Dueño" con mayúscula y tilde debe normalizar al rol owner.
	created, err := f.uc.Create(actorOwner, dto.CreateUserRequest{
		Name: "Nuevo", Email: "nuevo@example.com", Password: "secreto1", Role: "Dueño",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner", created.Role)
	stored, _ := f.users.GetByID(created.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto1", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))
}

func TestUserCreate_RolDesconocido(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Create(actorOwner, dto.CreateUserRequest{
		Name: "X", Email: "x@example.com", Password: "secreto1", Role: "astronauta",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserCreate_JefeInexistente(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Create(actorOwner, dto.CreateUserRequest{
		Name: "X", Email: "x@example.com", Password: "secreto1", Role: "vendedor", ReportsTo: ptr(999),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_PasswordCorto(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Create(actorOwner, dto.CreateUserRequest{
		Name: "X", Email: "x@example.com", Password: "123", Role: "vendedor",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Toda escritura de reportsTo pasa por la detección de ciclos.
func TestUserUpdate_CicloDeReporte_Rechazado(t *testing.T) {
	f := newUserFixture()

	// El gerente 3 no puede reportar a su subordinado transitivo 6.
	_, err := f.uc.Update(actorOwner, 3, dto.UpdateUserRequest{ReportsTo: ptr(6)})

	assert.ErrorIs(t, err, domain.ErrReportsToCycle)
}

func TestUserUpdate_AutoJefe_Rechazado(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Update(actorOwner, 4, dto.UpdateUserRequest{ReportsTo: ptr(4)})

	assert.ErrorIs(t, err, domain.ErrReportsToCycle)
}

func TestUserUpdate_MoverDeRama_Valido(t *testing.T) {
	f := newUserFixture()

	updated, err := f.uc.Update(actorOwner, 6, dto.UpdateUserRequest{ReportsTo: ptr(3)})
	require.NoError(t, err)

	require.NotNil(t, updated.ReportsTo)
	assert.Equal(t, int64(3), *updated.ReportsTo)
}

func TestUserUpdate_PasswordVacioNoCambia(t *testing.T) {
	f := newUserFixture()
	antes, _ := f.users.GetByID(6)
	antes.PasswordHash = "hash-original"

	_, err := f.uc.Update(actorOwner, 6, dto.UpdateUserRequest{Name: "Renombrado", ReportsTo: antes.ReportsTo})
	require.NoError(t, err)

	despues, _ := f.users.GetByID(6)
	assert.Equal(t, "hash-original", despues.PasswordHash)
	assert.Equal(t, "Renombrado", despues.Name)
}

func TestUserUpdate_Inexistente(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Update(actorOwner, 999, dto.UpdateUserRequest{Name: "X"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// El gate de rol del router no alcanza: un gerente no puede editar usuarios
// fuera de su subárbol, ni siquiera para cambiarles el password.
func TestUserUpdate_FueraDelAlcance_Forbidden(t *testing.T) {
	f := newUserFixture()
	antes, _ := f.users.GetByID(1)
	hashOriginal := antes.PasswordHash

	_, err := f.uc.Update(actorGerente, 1, dto.UpdateUserRequest{Password: "tomada123"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	despues, _ := f.users.GetByID(1)
	assert.Equal(t, hashOriginal, despues.PasswordHash, "el password del owner no debe cambiar")
}

func TestUserUpdate_DentroDelAlcance(t *testing.T) {
	f := newUserFixture()

	updated, err := f.uc.Update(actorGerente, 6, dto.UpdateUserRequest{Name: "Renombrado", ReportsTo: ptr(4)})
	require.NoError(t, err)

	assert.Equal(t, "Renombrado", updated.Name)
}

// La cuenta owner es indestructible, sin importar quién lo pida.
func TestUserDelete_OwnerProtegido(t *testing.T) {
	f := newUserFixture()

	err := f.uc.Delete(actorOwner, 1)

	assert.ErrorIs(t, err, domain.ErrOwnerProtected)
}

func TestUserDelete_FueraDelAlcance_Forbidden(t *testing.T) {
	f := newUserFixture()

	err := f.uc.Delete(actorGerente, 8)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	sigue, _ := f.users.GetByID(8)
	assert.NotNil(t, sigue, "el vendedor de otra rama no debe eliminarse")
}

func TestUserDelete_OK(t *testing.T) {
	f := newUserFixture()

	require.NoError(t, f.uc.Delete(actorOwner, 6))

	gone, _ := f.users.GetByID(6)
	assert.Nil(t, gone)
}

// La baja de un vendedor no arrastra sus leads: la referencia lead→vendedor es
// débil (ON DELETE SET NULL en el esquema) y el lead sobrevive sin asignar.
func TestUserDelete_ConLeadsAsignados_NoArrastraLeads(t *testing.T) {
	f := newLeadFixture()
	userUC := usecase.NewUserUseCase(f.users, access.NewResolver(f.users, logger.Nop()))
	lead := createLead(t, f, actorOwner, ptr(6))

	require.NoError(t, userUC.Delete(actorOwner, 6))

	out, err := f.uc.Get(actorOwner, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, out.ID)
}
