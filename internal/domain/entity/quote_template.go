package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteTemplate es una plantilla de presupuesto por modelo de vehículo.
// Solo el owner puede crearlas o modificarlas; todos pueden consultarlas
// y generar PDFs a partir de ellas.
type QuoteTemplate struct {
	ID               int64
	Modelo           string
	Marca            string
	ImagenURL        string
	PrecioContado    decimal.Decimal
	Especificaciones string
	PlanesCuotas     string // JSON con los planes de financiación
	Bonificaciones   string
	Anticipo         decimal.Decimal
	Activo           bool
	CreatedBy        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
