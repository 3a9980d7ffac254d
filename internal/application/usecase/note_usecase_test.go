package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
)

func newNoteUseCase() (*usecase.NoteUseCase, *fakeNoteRepo) {
	notes := newFakeNoteRepo()
	return usecase.NewNoteUseCase(notes), notes
}

func TestNoteCreate_AtribuidaAlActor(t *testing.T) {
	uc, _ := newNoteUseCase()

	note, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10, Texto: "llamar mañana"})
	require.NoError(t, err)

	assert.Equal(t, "Vende 6", note.Usuario)
	assert.Equal(t, int64(6), note.UserID)
	assert.Equal(t, int64(10), note.LeadID)
}

func TestNoteCreate_CamposObligatorios(t *testing.T) {
	uc, _ := newNoteUseCase()

	_, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteDelete_ElAutorPuede(t *testing.T) {
	uc, _ := newNoteUseCase()
	note, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10, Texto: "x"})
	require.NoError(t, err)

	assert.NoError(t, uc.Delete(actorVendedor, note.ID))
}

// Otro vendedor no puede borrar notas ajenas; la línea gerencial sí.
func TestNoteDelete_OtroVendedorNoPuede(t *testing.T) {
	uc, _ := newNoteUseCase()
	note, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10, Texto: "x"})
	require.NoError(t, err)

	otro := usecase.Actor{ID: 8, Name: "Vende 8", Role: entity.RoleVendedor}
	assert.ErrorIs(t, uc.Delete(otro, note.ID), domain.ErrForbidden)
}

func TestNoteDelete_GerentePuede(t *testing.T) {
	uc, _ := newNoteUseCase()
	note, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10, Texto: "x"})
	require.NoError(t, err)

	assert.NoError(t, uc.Delete(actorGerente, note.ID))
}

func TestNoteDelete_Inexistente(t *testing.T) {
	uc, _ := newNoteUseCase()

	assert.ErrorIs(t, uc.Delete(actorOwner, 999), domain.ErrNotFound)
}

func TestNoteListByLead_SoloDelLead(t *testing.T) {
	uc, _ := newNoteUseCase()
	_, err := uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 10, Texto: "a"})
	require.NoError(t, err)
	_, err = uc.Create(actorVendedor, dto.CreateNoteRequest{LeadID: 11, Texto: "b"})
	require.NoError(t, err)

	out, err := uc.ListByLead(10)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Texto)
}
