package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

var _ repository.QuoteTemplateRepository = (*QuoteTemplateRepo)(nil)

const quoteColumns = `id, modelo, marca, COALESCE(imagen_url, ''), COALESCE(precio_contado, 0),
	COALESCE(especificaciones_tecnicas, ''), COALESCE(planes_cuotas, ''),
	COALESCE(bonificaciones, ''), COALESCE(anticipo, 0), activo, created_by, created_at, updated_at`

// QuoteTemplateRepo implementación del puerto QuoteTemplateRepository sobre PostgreSQL.
type QuoteTemplateRepo struct {
	db querier
}

// NewQuoteTemplateRepository construye el adaptador de persistencia para plantillas.
func NewQuoteTemplateRepository(db querier) *QuoteTemplateRepo {
	return &QuoteTemplateRepo{db: db}
}

// Create persiste una plantilla nueva y devuelve el id generado.
func (r *QuoteTemplateRepo) Create(t *entity.QuoteTemplate) (int64, error) {
	query := `
		INSERT INTO presupuestos_plantillas (modelo, marca, imagen_url, precio_contado,
			especificaciones_tecnicas, planes_cuotas, bonificaciones, anticipo, activo, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(context.Background(), query,
		t.Modelo, t.Marca, t.ImagenURL, t.PrecioContado, t.Especificaciones,
		t.PlanesCuotas, t.Bonificaciones, t.Anticipo, t.Activo, t.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote template: %w", err)
	}
	return id, nil
}

// GetByID obtiene una plantilla. Nil sin error si no existe.
func (r *QuoteTemplateRepo) GetByID(id int64) (*entity.QuoteTemplate, error) {
	query := `SELECT ` + quoteColumns + ` FROM presupuestos_plantillas WHERE id = $1`
	t, err := scanQuoteTemplate(r.db.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote template: %w", err)
	}
	return t, nil
}

// Update actualiza una plantilla.
func (r *QuoteTemplateRepo) Update(t *entity.QuoteTemplate) error {
	query := `
		UPDATE presupuestos_plantillas
		SET modelo = $2, marca = $3, imagen_url = NULLIF($4, ''), precio_contado = $5,
		    especificaciones_tecnicas = NULLIF($6, ''), planes_cuotas = NULLIF($7, ''),
		    bonificaciones = NULLIF($8, ''), anticipo = $9, activo = $10, updated_at = now()
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		t.ID, t.Modelo, t.Marca, t.ImagenURL, t.PrecioContado, t.Especificaciones,
		t.PlanesCuotas, t.Bonificaciones, t.Anticipo, t.Activo,
	)
	if err != nil {
		return fmt.Errorf("update quote template: %w", err)
	}
	return nil
}

// Delete elimina una plantilla.
func (r *QuoteTemplateRepo) Delete(id int64) error {
	if _, err := r.db.Exec(context.Background(), `DELETE FROM presupuestos_plantillas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quote template: %w", err)
	}
	return nil
}

// ListActive devuelve las plantillas activas ordenadas por marca y modelo.
func (r *QuoteTemplateRepo) ListActive() ([]*entity.QuoteTemplate, error) {
	query := `SELECT ` + quoteColumns + ` FROM presupuestos_plantillas WHERE activo = true ORDER BY marca, modelo`
	rows, err := r.db.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list quote templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteTemplate
	for rows.Next() {
		t, err := scanQuoteTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("list quote templates: scan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanQuoteTemplate(row pgx.Row) (*entity.QuoteTemplate, error) {
	var t entity.QuoteTemplate
	err := row.Scan(&t.ID, &t.Modelo, &t.Marca, &t.ImagenURL, &t.PrecioContado,
		&t.Especificaciones, &t.PlanesCuotas, &t.Bonificaciones, &t.Anticipo,
		&t.Activo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
