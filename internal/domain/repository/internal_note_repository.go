package repository

import "github.com/alluma/crm-api/internal/domain/entity"

// InternalNoteRepository define el puerto de persistencia para notas internas.
type InternalNoteRepository interface {
	Create(n *entity.InternalNote) (int64, error)
	GetByID(id int64) (*entity.InternalNote, error)
	ListByLead(leadID int64) ([]*entity.InternalNote, error)
	Delete(id int64) error
}
