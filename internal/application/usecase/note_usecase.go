package usecase

import (
	"fmt"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// NoteUseCase administra las notas internas de los leads.
type NoteUseCase struct {
	notes repository.InternalNoteRepository
}

// NewNoteUseCase construye el caso de uso de notas internas.
func NewNoteUseCase(notes repository.InternalNoteRepository) *NoteUseCase {
	return &NoteUseCase{notes: notes}
}

// ListByLead devuelve las notas de un lead, más recientes primero.
func (uc *NoteUseCase) ListByLead(leadID int64) ([]*dto.NoteResponse, error) {
	all, err := uc.notes.ListByLead(leadID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(all))
	for _, n := range all {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Create da de alta una nota atribuida al actor.
func (uc *NoteUseCase) Create(actor Actor, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if in.LeadID == 0 || in.Texto == "" {
		return nil, fmt.Errorf("%w: lead_id y texto son obligatorios", domain.ErrInvalidInput)
	}
	id, err := uc.notes.Create(&entity.InternalNote{
		LeadID:  in.LeadID,
		Texto:   in.Texto,
		Usuario: actor.Name,
		UserID:  actor.ID,
	})
	if err != nil {
		return nil, err
	}
	created, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(created), nil
}

// Delete elimina una nota. Solo puede hacerlo su autor o un usuario de nivel
// gerencial.
func (uc *NoteUseCase) Delete(actor Actor, id int64) error {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	if note.UserID != actor.ID && !actor.Role.IsManagerTier() {
		return domain.ErrForbidden
	}
	return uc.notes.Delete(id)
}

func toNoteResponse(n *entity.InternalNote) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		ID:        n.ID,
		LeadID:    n.LeadID,
		Texto:     n.Texto,
		Usuario:   n.Usuario,
		UserID:    n.UserID,
		Timestamp: n.Timestamp,
	}
}
