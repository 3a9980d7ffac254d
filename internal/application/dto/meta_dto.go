package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertMetaRequest entrada para crear o sobreescribir el objetivo mensual de
// un vendedor. Reenviar el mismo (vendedor_id, mes) actualiza los valores.
type UpsertMetaRequest struct {
	VendedorID int64            `json:"vendedor_id" validate:"required"`
	Mes        string           `json:"mes" validate:"required"` // YYYY-MM
	MetaVentas *decimal.Decimal `json:"meta_ventas" validate:"required"`
	MetaLeads  *int             `json:"meta_leads" validate:"required"`
}

// UpdateMetaRequest entrada para editar los valores de una meta existente.
type UpdateMetaRequest struct {
	MetaVentas decimal.Decimal `json:"meta_ventas"`
	MetaLeads  int             `json:"meta_leads"`
}

// MetaResponse salida de una meta con los datos del vendedor.
type MetaResponse struct {
	ID            int64           `json:"id"`
	VendedorID    int64           `json:"vendedor_id"`
	VendedorName  string          `json:"vendedor_name"`
	VendedorEmail string          `json:"vendedor_email,omitempty"`
	Mes           string          `json:"mes"`
	MetaVentas    decimal.Decimal `json:"meta_ventas"`
	MetaLeads     int             `json:"meta_leads"`
	CreatedBy     int64           `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
