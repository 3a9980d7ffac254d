package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

var _ repository.InternalNoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación del puerto InternalNoteRepository sobre PostgreSQL.
type NoteRepo struct {
	db querier
}

// NewNoteRepository construye el adaptador de persistencia para notas internas.
func NewNoteRepository(db querier) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create persiste una nota nueva y devuelve el id generado.
func (r *NoteRepo) Create(n *entity.InternalNote) (int64, error) {
	query := `
		INSERT INTO notas_internas (lead_id, texto, usuario, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(context.Background(), query, n.LeadID, n.Texto, n.Usuario, n.UserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return id, nil
}

// GetByID obtiene una nota. Nil sin error si no existe.
func (r *NoteRepo) GetByID(id int64) (*entity.InternalNote, error) {
	query := `SELECT id, lead_id, texto, usuario, user_id, timestamp FROM notas_internas WHERE id = $1`
	var n entity.InternalNote
	err := r.db.QueryRow(context.Background(), query, id).
		Scan(&n.ID, &n.LeadID, &n.Texto, &n.Usuario, &n.UserID, &n.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// ListByLead devuelve las notas de un lead, más recientes primero.
func (r *NoteRepo) ListByLead(leadID int64) ([]*entity.InternalNote, error) {
	query := `
		SELECT id, lead_id, texto, usuario, user_id, timestamp
		FROM notas_internas
		WHERE lead_id = $1
		ORDER BY timestamp DESC`
	rows, err := r.db.Query(context.Background(), query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.InternalNote
	for rows.Next() {
		var n entity.InternalNote
		if err := rows.Scan(&n.ID, &n.LeadID, &n.Texto, &n.Usuario, &n.UserID, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("list notes: scan: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Delete elimina una nota.
func (r *NoteRepo) Delete(id int64) error {
	if _, err := r.db.Exec(context.Background(), `DELETE FROM notas_internas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
