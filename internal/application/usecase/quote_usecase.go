package usecase

import (
	"context"
	"fmt"

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// QuoteUseCase administra las plantillas de presupuesto y la generación de
// PDFs a partir de ellas. Las escrituras son exclusivas del owner (gate de rol
// en el router); la consulta y el PDF están abiertos a todo autenticado.
type QuoteUseCase struct {
	templates repository.QuoteTemplateRepository
	pdf       QuotePDFGenerator
}

// NewQuoteUseCase construye el caso de uso de presupuestos.
func NewQuoteUseCase(templates repository.QuoteTemplateRepository, pdf QuotePDFGenerator) *QuoteUseCase {
	return &QuoteUseCase{templates: templates, pdf: pdf}
}

// ListActive devuelve las plantillas activas.
func (uc *QuoteUseCase) ListActive() ([]*dto.QuoteTemplateResponse, error) {
	all, err := uc.templates.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteTemplateResponse, 0, len(all))
	for _, t := range all {
		out = append(out, toQuoteResponse(t))
	}
	return out, nil
}

// Get devuelve una plantilla por id.
func (uc *QuoteUseCase) Get(id int64) (*dto.QuoteTemplateResponse, error) {
	t, err := uc.templates.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(t), nil
}

// Create da de alta una plantilla.
func (uc *QuoteUseCase) Create(actor Actor, in dto.SaveQuoteTemplateRequest) (*dto.QuoteTemplateResponse, error) {
	if in.Modelo == "" || in.Marca == "" {
		return nil, fmt.Errorf("%w: modelo y marca son obligatorios", domain.ErrInvalidInput)
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	t := &entity.QuoteTemplate{
		Modelo:           in.Modelo,
		Marca:            in.Marca,
		ImagenURL:        in.ImagenURL,
		PrecioContado:    derefDecimal(in.PrecioContado),
		Especificaciones: in.Especificaciones,
		PlanesCuotas:     in.PlanesCuotas,
		Bonificaciones:   in.Bonificaciones,
		Anticipo:         derefDecimal(in.Anticipo),
		Activo:           activo,
		CreatedBy:        actor.ID,
	}
	id, err := uc.templates.Create(t)
	if err != nil {
		return nil, err
	}
	created, err := uc.templates.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(created), nil
}

// Update edita una plantilla existente.
func (uc *QuoteUseCase) Update(actor Actor, id int64, in dto.SaveQuoteTemplateRequest) (*dto.QuoteTemplateResponse, error) {
	existing, err := uc.templates.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	activo := existing.Activo
	if in.Activo != nil {
		activo = *in.Activo
	}
	t := &entity.QuoteTemplate{
		ID:               id,
		Modelo:           defaultString(in.Modelo, existing.Modelo),
		Marca:            defaultString(in.Marca, existing.Marca),
		ImagenURL:        in.ImagenURL,
		PrecioContado:    derefDecimal(in.PrecioContado),
		Especificaciones: in.Especificaciones,
		PlanesCuotas:     in.PlanesCuotas,
		Bonificaciones:   in.Bonificaciones,
		Anticipo:         derefDecimal(in.Anticipo),
		Activo:           activo,
		CreatedBy:        existing.CreatedBy,
	}
	if err := uc.templates.Update(t); err != nil {
		return nil, err
	}
	fresh, err := uc.templates.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(fresh), nil
}

// Delete elimina una plantilla.
func (uc *QuoteUseCase) Delete(id int64) error {
	existing, err := uc.templates.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.templates.Delete(id)
}

// GeneratePDF renderiza el presupuesto de la plantilla para un cliente.
func (uc *QuoteUseCase) GeneratePDF(ctx context.Context, id int64, in dto.QuotePDFRequest) ([]byte, error) {
	if in.Cliente == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	t, err := uc.templates.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateQuotePDF(ctx, t, in)
}

func toQuoteResponse(t *entity.QuoteTemplate) *dto.QuoteTemplateResponse {
	if t == nil {
		return nil
	}
	return &dto.QuoteTemplateResponse{
		ID:               t.ID,
		Modelo:           t.Modelo,
		Marca:            t.Marca,
		ImagenURL:        t.ImagenURL,
		PrecioContado:    t.PrecioContado,
		Especificaciones: t.Especificaciones,
		PlanesCuotas:     t.PlanesCuotas,
		Bonificaciones:   t.Bonificaciones,
		Anticipo:         t.Anticipo,
		Activo:           t.Activo,
		CreatedBy:        t.CreatedBy,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
