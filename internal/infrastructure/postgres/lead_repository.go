package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// leadSelect proyecta el lead con el nombre del vendedor resuelto. El join es
// LEFT porque un lead sin asignar tiene vendedor NULL.
const leadSelect = `
	SELECT l.id, l.nombre, l.telefono, COALESCE(l.email, ''), l.modelo,
	       COALESCE(l.forma_pago, ''), COALESCE(l.presupuesto, 0), COALESCE(l.info_usado, ''),
	       l.entrega, COALESCE(l.fecha, ''), l.fuente, l.vendedor, l.notas, l.estado,
	       l.created_by, l.created_at, l.updated_at, COALESCE(u.name, '')
	FROM leads l
	LEFT JOIN users u ON l.vendedor = u.id`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
// Funciona igual atado al pool o a una transacción (ver TxRunner).
type LeadRepo struct {
	db querier
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(db querier) *LeadRepo {
	return &LeadRepo{db: db}
}

// Create persiste un nuevo lead y devuelve el id generado.
func (r *LeadRepo) Create(lead *entity.Lead) (int64, error) {
	query := `
		INSERT INTO leads (nombre, telefono, email, modelo, forma_pago, presupuesto,
		                   info_usado, entrega, fecha, fuente, vendedor, notas, estado, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8,
		        NULLIF($9, ''), $10, $11, $12, $13, $14)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(context.Background(), query,
		lead.Nombre, lead.Telefono, lead.Email, lead.Modelo, lead.FormaPago, lead.Presupuesto,
		lead.InfoUsado, lead.Entrega, lead.Fecha, lead.Fuente, lead.Vendedor, lead.Notas,
		lead.Estado, lead.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

// GetByID obtiene un lead con su vendedor resuelto. Nil sin error si no existe.
func (r *LeadRepo) GetByID(id int64) (*entity.Lead, error) {
	row := r.db.QueryRow(context.Background(), leadSelect+` WHERE l.id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// Update actualiza todos los campos editables de un lead.
func (r *LeadRepo) Update(lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET nombre = $2, telefono = $3, email = NULLIF($4, ''), modelo = $5,
		    forma_pago = NULLIF($6, ''), presupuesto = $7, info_usado = NULLIF($8, ''),
		    entrega = $9, fecha = NULLIF($10, ''), fuente = $11, vendedor = $12,
		    notas = $13, estado = $14, updated_at = now()
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		lead.ID, lead.Nombre, lead.Telefono, lead.Email, lead.Modelo, lead.FormaPago,
		lead.Presupuesto, lead.InfoUsado, lead.Entrega, lead.Fecha, lead.Fuente,
		lead.Vendedor, lead.Notas, lead.Estado,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// Delete elimina un lead.
func (r *LeadRepo) Delete(id int64) error {
	if _, err := r.db.Exec(context.Background(), `DELETE FROM leads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

// List devuelve todos los leads, más recientes primero.
func (r *LeadRepo) List() ([]*entity.Lead, error) {
	rows, err := r.db.Query(context.Background(), leadSelect+` ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("list leads: scan: %w", err)
		}
		list = append(list, lead)
	}
	return list, rows.Err()
}

// LastAssignedSeller devuelve el vendedor del lead asignado más reciente,
// o nil si ningún lead fue asignado todavía.
func (r *LeadRepo) LastAssignedSeller() (*int64, error) {
	query := `
		SELECT vendedor FROM leads
		WHERE vendedor IS NOT NULL
		ORDER BY id DESC
		LIMIT 1`
	var vendedor int64
	err := r.db.QueryRow(context.Background(), query).Scan(&vendedor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last assigned seller: %w", err)
	}
	return &vendedor, nil
}

// AppendHistory agrega una entrada al historial de estados del lead.
func (r *LeadRepo) AppendHistory(h *entity.LeadHistory) error {
	query := `INSERT INTO lead_history (lead_id, estado, usuario) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(context.Background(), query, h.LeadID, h.Estado, h.Usuario); err != nil {
		return fmt.Errorf("insert lead history: %w", err)
	}
	return nil
}

// ListHistory devuelve el historial de un lead, más reciente primero.
func (r *LeadRepo) ListHistory(leadID int64) ([]*entity.LeadHistory, error) {
	query := `
		SELECT id, lead_id, estado, usuario, timestamp
		FROM lead_history
		WHERE lead_id = $1
		ORDER BY timestamp DESC`
	rows, err := r.db.Query(context.Background(), query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead history: %w", err)
	}
	defer rows.Close()
	var list []*entity.LeadHistory
	for rows.Next() {
		var h entity.LeadHistory
		if err := rows.Scan(&h.ID, &h.LeadID, &h.Estado, &h.Usuario, &h.Timestamp); err != nil {
			return nil, fmt.Errorf("list lead history: scan: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// DeleteHistory elimina el historial de un lead (cascada manual previa al
// borrado del lead).
func (r *LeadRepo) DeleteHistory(leadID int64) error {
	if _, err := r.db.Exec(context.Background(), `DELETE FROM lead_history WHERE lead_id = $1`, leadID); err != nil {
		return fmt.Errorf("delete lead history: %w", err)
	}
	return nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(&l.ID, &l.Nombre, &l.Telefono, &l.Email, &l.Modelo, &l.FormaPago,
		&l.Presupuesto, &l.InfoUsado, &l.Entrega, &l.Fecha, &l.Fuente, &l.Vendedor,
		&l.Notas, &l.Estado, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt, &l.VendedorNombre)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
