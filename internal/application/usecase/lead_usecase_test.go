package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/assignment"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario: owner(1) > gerente(3) > supervisor(4) > vendedores(6,7)
// y un vendedor de otra rama (8) bajo el supervisor (5).
// ──────────────────────────────────────────────────────────────────────────────

func ptr(v int64) *int64 { return &v }

func testUser(id int64, name string, role entity.Role, reportsTo int64) *entity.User {
	u := &entity.User{ID: id, Name: name, Role: role, Active: true}
	if reportsTo != 0 {
		u.ReportsTo = &reportsTo
	}
	return u
}

type leadFixture struct {
	uc    *usecase.LeadUseCase
	leads *fakeLeadRepo
	users *fakeUserRepo
}

func newLeadFixture() *leadFixture {
	users := newFakeUserRepo(
		testUser(1, "Dueño", entity.RoleOwner, 0),
		testUser(3, "Roberto", entity.RoleGerente, 1),
		testUser(4, "Super A", entity.RoleSupervisor, 3),
		testUser(5, "Super B", entity.RoleSupervisor, 3),
		testUser(6, "Vende 6", entity.RoleVendedor, 4),
		testUser(7, "Vende 7", entity.RoleVendedor, 4),
		testUser(8, "Vende 8", entity.RoleVendedor, 5),
	)
	leads := newFakeLeadRepo()
	resolver := access.NewResolver(users, logger.Nop())
	engine := assignment.NewEngine(users, leads, nil, assignment.StrategyRoundRobin, false, logger.Nop())
	uc := usecase.NewLeadUseCase(&fakeTxRunner{leads: leads}, leads, users, resolver, engine)
	return &leadFixture{uc: uc, leads: leads, users: users}
}

func actorFor(id int64, name string, role entity.Role) usecase.Actor {
	return usecase.Actor{ID: id, Name: name, Role: role}
}

var (
	actorOwner      = actorFor(1, "Dueño", entity.RoleOwner)
	actorGerente    = actorFor(3, "Roberto", entity.RoleGerente)
	actorSupervisor = actorFor(4, "Super A", entity.RoleSupervisor)
	actorVendedor   = actorFor(6, "Vende 6", entity.RoleVendedor)
)

func createLead(t *testing.T, f *leadFixture, actor usecase.Actor, vendedor *int64) *dto.LeadResponse {
	t.Helper()
	lead, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		Nombre:   "Juan Pérez",
		Telefono: "1122334455",
		Modelo:   "Onix",
		Vendedor: vendedor,
	})
	require.NoError(t, err)
	return lead
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreate_CamposObligatorios(t *testing.T) {
	f := newLeadFixture()

	_, err := f.uc.Create(context.Background(), actorOwner, dto.CreateLeadRequest{Nombre: "Juan"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un lead sin vendedor pasa por el motor de asignación y nace con historial
// "nuevo" atribuido al creador.
func TestLeadCreate_SinVendedor_AsignaPorRotacion(t *testing.T) {
	f := newLeadFixture()

	lead := createLead(t, f, actorOwner, nil)

	require.NotNil(t, lead.Vendedor, "el motor debe asignar un vendedor")
	assert.Equal(t, int64(6), *lead.Vendedor, "primer lead va al primer vendedor del roster")
	assert.Equal(t, entity.LeadEstadoNuevo, lead.Estado)

	hist, err := f.uc.History(actorOwner, lead.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1, "el alta debe dejar exactamente una entrada de historial")
	assert.Equal(t, entity.LeadEstadoNuevo, hist[0].Estado)
	assert.Equal(t, "Dueño", hist[0].Usuario)
}

// La rotación avanza con cada alta: el segundo lead va al sucesor del primero.
func TestLeadCreate_RotacionAvanza(t *testing.T) {
	f := newLeadFixture()

	primero := createLead(t, f, actorOwner, nil)
	segundo := createLead(t, f, actorOwner, nil)

	require.NotNil(t, segundo.Vendedor)
	assert.NotEqual(t, *primero.Vendedor, *segundo.Vendedor)
	assert.Equal(t, int64(7), *segundo.Vendedor)
}

func TestLeadCreate_VendedorFueraDeAlcance_Forbidden(t *testing.T) {
	f := newLeadFixture()

	// El supervisor 4 no tiene al vendedor 8 en su subárbol.
	_, err := f.uc.Create(context.Background(), actorSupervisor, dto.CreateLeadRequest{
		Nombre: "Juan", Telefono: "11", Modelo: "Onix", Vendedor: ptr(8),
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeadCreate_VendedorInexistente(t *testing.T) {
	f := newLeadFixture()

	_, err := f.uc.Create(context.Background(), actorOwner, dto.CreateLeadRequest{
		Nombre: "Juan", Telefono: "11", Modelo: "Onix", Vendedor: ptr(999),
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// El campo legacy vendedor_id sigue aceptándose como alias de vendedor.
func TestLeadCreate_AliasVendedorID(t *testing.T) {
	f := newLeadFixture()

	lead, err := f.uc.Create(context.Background(), actorGerente, dto.CreateLeadRequest{
		Nombre: "Juan", Telefono: "11", Modelo: "Onix", VendedorID: ptr(7),
	})

	require.NoError(t, err)
	require.NotNil(t, lead.Vendedor)
	assert.Equal(t, int64(7), *lead.Vendedor)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad: List / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadList_FiltraPorAlcance(t *testing.T) {
	f := newLeadFixture()
	createLead(t, f, actorOwner, ptr(6))
	createLead(t, f, actorOwner, ptr(8))

	visibles, err := f.uc.List(actorSupervisor)
	require.NoError(t, err)

	require.Len(t, visibles, 1, "el supervisor 4 no debe ver leads del vendedor 8")
	assert.Equal(t, int64(6), *visibles[0].Vendedor)
}

// Un lead sin asignar es visible para cualquiera hasta que alguien lo reclame.
func TestLeadList_SinAsignarEsVisibleParaTodos(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorOwner, ptr(8))
	// Lo desasignamos directo en storage para simular un lead huérfano.
	raw, _ := f.leads.GetByID(lead.ID)
	raw.Vendedor = nil
	require.NoError(t, f.leads.Update(raw))

	visibles, err := f.uc.List(actorVendedor)
	require.NoError(t, err)

	assert.Len(t, visibles, 1)
}

func TestLeadGet_FueraDeAlcance_Forbidden(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorOwner, ptr(8))

	_, err := f.uc.Get(actorSupervisor, lead.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeadGet_Inexistente_NotFound(t *testing.T) {
	f := newLeadFixture()

	_, err := f.uc.Get(actorOwner, 999)

	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: historial de estados
// ──────────────────────────────────────────────────────────────────────────────

func updateRequest(lead *dto.LeadResponse) dto.UpdateLeadRequest {
	return dto.UpdateLeadRequest{
		Nombre:   lead.Nombre,
		Telefono: lead.Telefono,
		Modelo:   lead.Modelo,
		Vendedor: lead.Vendedor,
		Estado:   lead.Estado,
	}
}

func TestLeadUpdate_CambioDeEstado_AgregaUnaEntradaDeHistorial(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorGerente, ptr(6))

	in := updateRequest(lead)
	in.Estado = "contactado"
	updated, err := f.uc.Update(context.Background(), actorGerente, lead.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "contactado", updated.Estado)

	hist, err := f.uc.History(actorGerente, lead.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2, "alta + cambio de estado")
	// El historial en memoria conserva el orden de inserción.
	assert.Equal(t, "contactado", hist[1].Estado)
	assert.Equal(t, "Roberto", hist[1].Usuario, "el cambio se atribuye al actor, no al dueño del lead")
}

func TestLeadUpdate_MismoEstado_NoDuplicaHistorial(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorGerente, ptr(6))

	_, err := f.uc.Update(context.Background(), actorGerente, lead.ID, updateRequest(lead))
	require.NoError(t, err)

	hist, err := f.uc.History(actorGerente, lead.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "re-guardar con el mismo estado no debe agregar historial")
}

func TestLeadUpdate_ReasignarFueraDeAlcance_Forbidden(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorOwner, ptr(6))

	in := updateRequest(lead)
	in.Vendedor = ptr(8)
	_, err := f.uc.Update(context.Background(), actorSupervisor, lead.ID, in)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeadUpdate_FueraDeAlcance_Forbidden(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorOwner, ptr(8))

	_, err := f.uc.Update(context.Background(), actorVendedor, lead.ID, updateRequest(lead))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadDelete_SoloOwner(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorGerente, ptr(6))

	err := f.uc.Delete(context.Background(), actorGerente, lead.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden, "el borrado duro exige rol owner")
}

func TestLeadDelete_OwnerEliminaLeadYHistorial(t *testing.T) {
	f := newLeadFixture()
	lead := createLead(t, f, actorOwner, ptr(6))

	require.NoError(t, f.uc.Delete(context.Background(), actorOwner, lead.ID))

	_, err := f.uc.Get(actorOwner, lead.ID)
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	assert.Empty(t, f.leads.history, "el historial se elimina junto con el lead")
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreateFromWebhook_MapeaAliasDeMeta(t *testing.T) {
	f := newLeadFixture()

	lead, err := f.uc.CreateFromWebhook(context.Background(), 1, dto.WebhookLeadRequest{
		FullName:     "María García",
		PhoneNumber:  "1199887766",
		EmailAddress: "maria@example.com",
		VehicleModel: "Tracker",
	})
	require.NoError(t, err)

	assert.Equal(t, "María García", lead.Nombre)
	assert.Equal(t, "1199887766", lead.Telefono)
	assert.Equal(t, "maria@example.com", lead.Email)
	assert.Equal(t, "Tracker", lead.Modelo)
	assert.Equal(t, "meta", lead.Fuente, "la fuente por defecto del webhook es meta")
	require.NotNil(t, lead.Vendedor, "el webhook siempre intenta asignar")

	hist, err := f.uc.History(actorOwner, lead.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "Sistema Zapier", hist[0].Usuario)
}

func TestLeadCreateFromWebhook_SinTelefono_Invalido(t *testing.T) {
	f := newLeadFixture()

	_, err := f.uc.CreateFromWebhook(context.Background(), 1, dto.WebhookLeadRequest{
		FullName: "María",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeadCreateFromWebhook_ModeloPorDefecto(t *testing.T) {
	f := newLeadFixture()

	lead, err := f.uc.CreateFromWebhook(context.Background(), 1, dto.WebhookLeadRequest{
		Nombre: "Pedro", Telefono: "11",
	})
	require.NoError(t, err)

	assert.Equal(t, "No especificado", lead.Modelo)
	assert.Equal(t, "Contado", lead.FormaPago)
}
