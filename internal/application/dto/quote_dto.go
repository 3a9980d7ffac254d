package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveQuoteTemplateRequest entrada para crear o editar una plantilla de
// presupuesto (solo owner).
type SaveQuoteTemplateRequest struct {
	Modelo           string           `json:"modelo" validate:"required"`
	Marca            string           `json:"marca" validate:"required"`
	ImagenURL        string           `json:"imagen_url"`
	PrecioContado    *decimal.Decimal `json:"precio_contado"`
	Especificaciones string           `json:"especificaciones_tecnicas"`
	PlanesCuotas     string           `json:"planes_cuotas"`
	Bonificaciones   string           `json:"bonificaciones"`
	Anticipo         *decimal.Decimal `json:"anticipo"`
	Activo           *bool            `json:"activo"`
}

// QuoteTemplateResponse salida de una plantilla.
type QuoteTemplateResponse struct {
	ID               int64           `json:"id"`
	Modelo           string          `json:"modelo"`
	Marca            string          `json:"marca"`
	ImagenURL        string          `json:"imagen_url,omitempty"`
	PrecioContado    decimal.Decimal `json:"precio_contado"`
	Especificaciones string          `json:"especificaciones_tecnicas,omitempty"`
	PlanesCuotas     string          `json:"planes_cuotas,omitempty"`
	Bonificaciones   string          `json:"bonificaciones,omitempty"`
	Anticipo         decimal.Decimal `json:"anticipo"`
	Activo           bool            `json:"activo"`
	CreatedBy        int64           `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// QuotePDFRequest datos del cliente para renderizar el presupuesto en PDF.
type QuotePDFRequest struct {
	Cliente  string `json:"cliente" validate:"required"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}
