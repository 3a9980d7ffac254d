package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/application/assignment"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// Usuario atribuido en el historial de leads que entran por webhook.
const webhookActorName = "Sistema Zapier"

// LeadUseCase opera sobre leads aplicando el alcance jerárquico del actor en
// cada lectura y escritura, y la asignación automática cuando el lead llega
// sin vendedor.
type LeadUseCase struct {
	tx       LeadTxRunner
	leads    repository.LeadRepository
	users    repository.UserRepository
	resolver *access.Resolver
	engine   *assignment.Engine
}

// NewLeadUseCase construye el caso de uso de leads.
func NewLeadUseCase(tx LeadTxRunner, leads repository.LeadRepository, users repository.UserRepository, resolver *access.Resolver, engine *assignment.Engine) *LeadUseCase {
	return &LeadUseCase{tx: tx, leads: leads, users: users, resolver: resolver, engine: engine}
}

// List devuelve los leads visibles para el actor: los de su subárbol más los
// que todavía no tienen vendedor asignado.
func (uc *LeadUseCase) List(actor Actor) ([]*dto.LeadResponse, error) {
	all, err := uc.leads.List()
	if err != nil {
		return nil, err
	}
	scope := uc.resolver.AccessibleIDs(actor.ID)
	out := make([]*dto.LeadResponse, 0, len(all))
	for _, l := range all {
		if scope.ContainsOwner(l.Vendedor) {
			out = append(out, toLeadResponse(l))
		}
	}
	return out, nil
}

// Get devuelve un lead si el actor puede verlo. Distingue entre inexistente
// (ErrLeadNotFound) y fuera de alcance (ErrForbidden).
func (uc *LeadUseCase) Get(actor Actor, id int64) (*dto.LeadResponse, error) {
	lead, err := uc.leads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).ContainsOwner(lead.Vendedor) {
		return nil, domain.ErrForbidden
	}
	return toLeadResponse(lead), nil
}

// Create da de alta un lead. Si el request trae vendedor, ese vendedor debe
// estar dentro del alcance del actor (nadie asigna trabajo fuera de su
// subárbol); si no trae, el motor de asignación elige uno. El insert, el
// historial inicial y la relectura ocurren en una sola transacción.
func (uc *LeadUseCase) Create(ctx context.Context, actor Actor, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if in.Nombre == "" || in.Telefono == "" || in.Modelo == "" {
		return nil, fmt.Errorf("%w: nombre, teléfono y modelo son obligatorios", domain.ErrInvalidInput)
	}

	assignee := in.AssigneeID()
	if assignee != nil {
		if err := uc.validateAssignee(actor, *assignee); err != nil {
			return nil, err
		}
	} else {
		assignee = uc.engine.NextSeller(in.Team)
	}

	lead := &entity.Lead{
		Nombre:      in.Nombre,
		Telefono:    in.Telefono,
		Email:       in.Email,
		Modelo:      in.Modelo,
		FormaPago:   in.FormaPago,
		Presupuesto: derefDecimal(in.Presupuesto),
		InfoUsado:   in.InfoUsado,
		Entrega:     in.Entrega,
		Fecha:       in.Fecha,
		Fuente:      defaultString(in.Fuente, "otro"),
		Vendedor:    assignee,
		Notas:       in.Notas,
		Estado:      entity.LeadEstadoNuevo,
		CreatedBy:   actor.ID,
	}
	return uc.createWithHistory(ctx, lead, actor.Name)
}

// CreateFromWebhook sintetiza un lead desde el payload laxo del webhook de
// captación (alias de Meta/Zapier), y siempre pasa por el motor de asignación
// cuando no viene vendedor. El creador es el usuario sistema.
func (uc *LeadUseCase) CreateFromWebhook(ctx context.Context, systemUserID int64, in dto.WebhookLeadRequest) (*dto.LeadResponse, error) {
	nombre := defaultString(in.Nombre, in.FullName)
	telefono := defaultString(in.Telefono, in.PhoneNumber)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if telefono == "" {
		return nil, fmt.Errorf("%w: el teléfono es obligatorio", domain.ErrInvalidInput)
	}

	presupuesto := in.Presupuesto
	if presupuesto == nil {
		presupuesto = in.Budget
	}
	assignee := in.Vendedor
	if assignee == nil {
		assignee = uc.engine.NextSeller(in.Team)
	}

	lead := &entity.Lead{
		Nombre:      nombre,
		Telefono:    telefono,
		Email:       defaultString(in.Email, in.EmailAddress),
		Modelo:      defaultString(defaultString(in.Modelo, in.VehicleModel), "No especificado"),
		FormaPago:   defaultString(in.FormaPago, "Contado"),
		Presupuesto: derefDecimal(presupuesto),
		InfoUsado:   defaultString(in.InfoUsado, in.TradeInInfo),
		Entrega:     in.Entrega,
		Fecha:       time.Now().Format("2006-01-02"),
		Fuente:      defaultString(in.Fuente, "meta"),
		Vendedor:    assignee,
		Notas:       defaultString(defaultString(in.Notas, in.AdditionalInfo), "Lead recibido desde Meta vía Zapier"),
		Estado:      entity.LeadEstadoNuevo,
		CreatedBy:   systemUserID,
	}
	return uc.createWithHistory(ctx, lead, webhookActorName)
}

// Update actualiza un lead dentro del alcance del actor. Una reasignación
// pasa por el mismo control que el alta; un cambio de estado distinto al
// actual agrega exactamente una entrada de historial atribuida al actor.
func (uc *LeadUseCase) Update(ctx context.Context, actor Actor, id int64, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	current, err := uc.leads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrLeadNotFound
	}
	scope := uc.resolver.AccessibleIDs(actor.ID)
	if !scope.ContainsOwner(current.Vendedor) {
		return nil, domain.ErrForbidden
	}

	assignee := in.AssigneeID()
	if assignee != nil && (current.Vendedor == nil || *assignee != *current.Vendedor) {
		if err := uc.validateAssignee(actor, *assignee); err != nil {
			return nil, err
		}
	}
	if assignee == nil {
		assignee = current.Vendedor
	}

	estado := defaultString(in.Estado, current.Estado)
	changed := estado != current.Estado

	updated := &entity.Lead{
		ID:          id,
		Nombre:      in.Nombre,
		Telefono:    in.Telefono,
		Email:       in.Email,
		Modelo:      in.Modelo,
		FormaPago:   in.FormaPago,
		Presupuesto: derefDecimal(in.Presupuesto),
		InfoUsado:   in.InfoUsado,
		Entrega:     in.Entrega,
		Fecha:       in.Fecha,
		Fuente:      in.Fuente,
		Vendedor:    assignee,
		Notas:       in.Notas,
		Estado:      estado,
		CreatedBy:   current.CreatedBy,
	}

	var result *entity.Lead
	err = uc.tx.Run(ctx, func(leads repository.LeadRepository) error {
		if changed {
			if err := leads.AppendHistory(&entity.LeadHistory{LeadID: id, Estado: estado, Usuario: actor.Name}); err != nil {
				return err
			}
		}
		if err := leads.Update(updated); err != nil {
			return err
		}
		result, err = leads.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(result), nil
}

// Delete elimina un lead y su historial en una sola transacción. Además del
// alcance jerárquico, el borrado duro exige rol owner.
func (uc *LeadUseCase) Delete(ctx context.Context, actor Actor, id int64) error {
	if actor.Role != entity.RoleOwner {
		return domain.ErrForbidden
	}
	lead, err := uc.leads.GetByID(id)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrLeadNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).ContainsOwner(lead.Vendedor) {
		return domain.ErrForbidden
	}
	return uc.tx.Run(ctx, func(leads repository.LeadRepository) error {
		if err := leads.DeleteHistory(id); err != nil {
			return err
		}
		return leads.Delete(id)
	})
}

// History lista el historial de estados de un lead visible para el actor.
func (uc *LeadUseCase) History(actor Actor, leadID int64) ([]*dto.LeadHistoryResponse, error) {
	lead, err := uc.leads.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).ContainsOwner(lead.Vendedor) {
		return nil, domain.ErrForbidden
	}
	entries, err := uc.leads.ListHistory(leadID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadHistoryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, &dto.LeadHistoryResponse{
			ID: h.ID, LeadID: h.LeadID, Estado: h.Estado, Usuario: h.Usuario, Timestamp: h.Timestamp,
		})
	}
	return out, nil
}

// validateAssignee exige que el vendedor pedido exista y esté dentro del
// alcance del actor.
func (uc *LeadUseCase) validateAssignee(actor Actor, assigneeID int64) error {
	target, err := uc.users.GetByID(assigneeID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if !uc.resolver.AccessibleIDs(actor.ID).Contains(assigneeID) {
		return domain.ErrForbidden
	}
	return nil
}

// createWithHistory inserta el lead, su entrada inicial de historial y relee
// la proyección con el nombre del vendedor, todo dentro de una transacción.
func (uc *LeadUseCase) createWithHistory(ctx context.Context, lead *entity.Lead, actorName string) (*dto.LeadResponse, error) {
	var created *entity.Lead
	err := uc.tx.Run(ctx, func(leads repository.LeadRepository) error {
		id, err := leads.Create(lead)
		if err != nil {
			return err
		}
		if err := leads.AppendHistory(&entity.LeadHistory{LeadID: id, Estado: entity.LeadEstadoNuevo, Usuario: actorName}); err != nil {
			return err
		}
		created, err = leads.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(created), nil
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	if l == nil {
		return nil
	}
	return &dto.LeadResponse{
		ID:             l.ID,
		Nombre:         l.Nombre,
		Telefono:       l.Telefono,
		Email:          l.Email,
		Modelo:         l.Modelo,
		FormaPago:      l.FormaPago,
		Presupuesto:    l.Presupuesto,
		InfoUsado:      l.InfoUsado,
		Entrega:        l.Entrega,
		Fecha:          l.Fecha,
		Fuente:         l.Fuente,
		Vendedor:       l.Vendedor,
		VendedorNombre: l.VendedorNombre,
		Notas:          l.Notas,
		Estado:         l.Estado,
		CreatedBy:      l.CreatedBy,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func defaultString(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
