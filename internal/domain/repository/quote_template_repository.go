package repository

import "github.com/alluma/crm-api/internal/domain/entity"

// QuoteTemplateRepository define el puerto de persistencia para las
// plantillas de presupuesto.
type QuoteTemplateRepository interface {
	Create(t *entity.QuoteTemplate) (int64, error)
	GetByID(id int64) (*entity.QuoteTemplate, error)
	Update(t *entity.QuoteTemplate) error
	Delete(id int64) error
	// ListActive devuelve las plantillas activas ordenadas por marca y modelo.
	ListActive() ([]*entity.QuoteTemplate, error)
}
