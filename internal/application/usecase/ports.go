package usecase

import (
	"context"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// Actor es el usuario autenticado que ejecuta la operación, tal como viene de
// los claims del token.
type Actor struct {
	ID   int64
	Name string
	Role entity.Role
}

// LeadTxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de leads atado a esa tx. Garantiza que el insert del lead, su
// historial y la relectura proyectada sean una unidad todo-o-nada: un fallo
// parcial no deja leads huérfanos sin historial.
type LeadTxRunner interface {
	Run(ctx context.Context, fn func(leads repository.LeadRepository) error) error
}

// QuotePDFGenerator renderiza el presupuesto de una plantilla para un cliente.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, t *entity.QuoteTemplate, in dto.QuotePDFRequest) ([]byte, error)
}
