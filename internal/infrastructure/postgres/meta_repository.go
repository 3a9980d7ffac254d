package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

var _ repository.MetaRepository = (*MetaRepo)(nil)

const metaSelect = `
	SELECT m.id, m.vendedor_id, m.mes, m.meta_ventas, m.meta_leads, m.created_by,
	       m.created_at, m.updated_at, u.name, u.email
	FROM metas m
	INNER JOIN users u ON m.vendedor_id = u.id`

// MetaRepo implementación del puerto MetaRepository sobre PostgreSQL.
type MetaRepo struct {
	db querier
}

// NewMetaRepository construye el adaptador de persistencia para metas.
func NewMetaRepository(db querier) *MetaRepo {
	return &MetaRepo{db: db}
}

// Upsert inserta o actualiza la meta del par (vendedor_id, mes) y devuelve la
// fila resultante con los datos del vendedor.
func (r *MetaRepo) Upsert(meta *entity.Meta) (*entity.Meta, error) {
	query := `
		INSERT INTO metas (vendedor_id, mes, meta_ventas, meta_leads, created_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vendedor_id, mes) DO UPDATE
		SET meta_ventas = EXCLUDED.meta_ventas,
		    meta_leads = EXCLUDED.meta_leads,
		    updated_at = now()
		RETURNING id`
	var id int64
	err := r.db.QueryRow(context.Background(), query,
		meta.VendedorID, meta.Mes, meta.MetaVentas, meta.MetaLeads, meta.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("upsert meta: %w", err)
	}
	return r.GetByID(id)
}

// GetByID obtiene una meta con los datos del vendedor. Nil sin error si no existe.
func (r *MetaRepo) GetByID(id int64) (*entity.Meta, error) {
	row := r.db.QueryRow(context.Background(), metaSelect+` WHERE m.id = $1`, id)
	meta, err := scanMeta(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meta by id: %w", err)
	}
	return meta, nil
}

// UpdateTargets cambia los valores objetivo de una meta existente.
func (r *MetaRepo) UpdateTargets(id int64, metaVentas decimal.Decimal, metaLeads int) (*entity.Meta, error) {
	query := `
		UPDATE metas
		SET meta_ventas = $2, meta_leads = $3, updated_at = now()
		WHERE id = $1`
	if _, err := r.db.Exec(context.Background(), query, id, metaVentas, metaLeads); err != nil {
		return nil, fmt.Errorf("update meta: %w", err)
	}
	return r.GetByID(id)
}

// Delete elimina una meta.
func (r *MetaRepo) Delete(id int64) error {
	if _, err := r.db.Exec(context.Background(), `DELETE FROM metas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete meta: %w", err)
	}
	return nil
}

// List devuelve todas las metas ordenadas por mes descendente y vendedor.
func (r *MetaRepo) List() ([]*entity.Meta, error) {
	rows, err := r.db.Query(context.Background(), metaSelect+` ORDER BY m.mes DESC, u.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list metas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Meta
	for rows.Next() {
		meta, err := scanMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("list metas: scan: %w", err)
		}
		list = append(list, meta)
	}
	return list, rows.Err()
}

func scanMeta(row pgx.Row) (*entity.Meta, error) {
	var m entity.Meta
	err := row.Scan(&m.ID, &m.VendedorID, &m.Mes, &m.MetaVentas, &m.MetaLeads,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt, &m.VendedorName, &m.VendedorEmail)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
