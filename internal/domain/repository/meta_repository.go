package repository

import (
	"github.com/shopspring/decimal"

	"github.com/alluma/crm-api/internal/domain/entity"
)

// MetaRepository define el puerto de persistencia para Meta (objetivos).
type MetaRepository interface {
	// Upsert inserta o actualiza por (vendedor_id, mes) y devuelve la fila
	// resultante con los datos del vendedor.
	Upsert(meta *entity.Meta) (*entity.Meta, error)
	GetByID(id int64) (*entity.Meta, error)
	UpdateTargets(id int64, metaVentas decimal.Decimal, metaLeads int) (*entity.Meta, error)
	Delete(id int64) error
	List() ([]*entity.Meta, error)
}
