package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta es el objetivo mensual de un vendedor. La clave natural es
// (VendedorID, Mes): reenviar el mismo par sobreescribe los objetivos.
type Meta struct {
	ID         int64
	VendedorID int64
	Mes        string // YYYY-MM
	MetaVentas decimal.Decimal
	MetaLeads  int
	CreatedBy  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Datos del vendedor (join con users).
	VendedorName  string
	VendedorEmail string
}
