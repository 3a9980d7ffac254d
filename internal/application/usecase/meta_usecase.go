package usecase

import (
	"fmt"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// MetaUseCase administra los objetivos mensuales de los vendedores con el
// mismo alcance jerárquico que leads y usuarios: nadie fija ni consulta metas
// de vendedores fuera de su subárbol.
type MetaUseCase struct {
	metas    repository.MetaRepository
	resolver *access.Resolver
}

// NewMetaUseCase construye el caso de uso de metas.
func NewMetaUseCase(metas repository.MetaRepository, resolver *access.Resolver) *MetaUseCase {
	return &MetaUseCase{metas: metas, resolver: resolver}
}

// List devuelve las metas de los vendedores dentro del alcance del actor.
func (uc *MetaUseCase) List(actor Actor) ([]*dto.MetaResponse, error) {
	all, err := uc.metas.List()
	if err != nil {
		return nil, err
	}
	scope := uc.resolver.AccessibleIDs(actor.ID)
	out := make([]*dto.MetaResponse, 0, len(all))
	for _, m := range all {
		if scope.Contains(m.VendedorID) {
			out = append(out, toMetaResponse(m))
		}
	}
	return out, nil
}

// Upsert crea o sobreescribe la meta del par (vendedor, mes). El vendedor
// objetivo debe estar dentro del alcance del actor.
func (uc *MetaUseCase) Upsert(actor Actor, in dto.UpsertMetaRequest) (*dto.MetaResponse, error) {
	if in.VendedorID == 0 || in.Mes == "" || in.MetaVentas == nil || in.MetaLeads == nil {
		return nil, fmt.Errorf("%w: vendedor_id, mes, meta_ventas y meta_leads son obligatorios", domain.ErrInvalidInput)
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(in.VendedorID) {
		return nil, domain.ErrForbidden
	}
	meta, err := uc.metas.Upsert(&entity.Meta{
		VendedorID: in.VendedorID,
		Mes:        in.Mes,
		MetaVentas: *in.MetaVentas,
		MetaLeads:  *in.MetaLeads,
		CreatedBy:  actor.ID,
	})
	if err != nil {
		return nil, err
	}
	return toMetaResponse(meta), nil
}

// Update edita los valores de una meta existente dentro del alcance del actor.
func (uc *MetaUseCase) Update(actor Actor, id int64, in dto.UpdateMetaRequest) (*dto.MetaResponse, error) {
	existing, err := uc.metas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(existing.VendedorID) {
		return nil, domain.ErrForbidden
	}
	updated, err := uc.metas.UpdateTargets(id, in.MetaVentas, in.MetaLeads)
	if err != nil {
		return nil, err
	}
	return toMetaResponse(updated), nil
}

// Delete elimina una meta dentro del alcance del actor.
func (uc *MetaUseCase) Delete(actor Actor, id int64) error {
	existing, err := uc.metas.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(existing.VendedorID) {
		return domain.ErrForbidden
	}
	return uc.metas.Delete(id)
}

func toMetaResponse(m *entity.Meta) *dto.MetaResponse {
	if m == nil {
		return nil
	}
	return &dto.MetaResponse{
		ID:            m.ID,
		VendedorID:    m.VendedorID,
		VendedorName:  m.VendedorName,
		VendedorEmail: m.VendedorEmail,
		Mes:           m.Mes,
		MetaVentas:    m.MetaVentas,
		MetaLeads:     m.MetaLeads,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
