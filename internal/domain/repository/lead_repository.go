package repository

import "github.com/alluma/crm-api/internal/domain/entity"

// LeadRepository define el puerto de persistencia para Lead y su historial.
type LeadRepository interface {
	Create(lead *entity.Lead) (int64, error)
	GetByID(id int64) (*entity.Lead, error)
	Update(lead *entity.Lead) error
	Delete(id int64) error
	List() ([]*entity.Lead, error)
	// LastAssignedSeller devuelve el vendedor del lead asignado más reciente
	// (nil si nunca se asignó ninguno). Insumo del round-robin.
	LastAssignedSeller() (*int64, error)
	AppendHistory(h *entity.LeadHistory) error
	ListHistory(leadID int64) ([]*entity.LeadHistory, error)
	DeleteHistory(leadID int64) error
}
