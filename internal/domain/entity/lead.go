package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado inicial de todo lead. Los estados posteriores son texto libre
// definidos por el flujo comercial (contactado, cotizado, vendido, etc.).
const LeadEstadoNuevo = "nuevo"

// Lead es un prospecto de venta. Vendedor es nil mientras no esté asignado;
// un lead sin asignar es visible para cualquier usuario autenticado.
type Lead struct {
	ID          int64
	Nombre      string
	Telefono    string
	Email       string
	Modelo      string
	FormaPago   string
	Presupuesto decimal.Decimal
	InfoUsado   string
	Entrega     bool
	Fecha       string // YYYY-MM-DD
	Fuente      string
	Vendedor    *int64
	Notas       string
	Estado      string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// VendedorNombre viene del join con users; no se persiste en leads.
	VendedorNombre string
}

// LeadHistory registra cada cambio de estado de un lead. Solo se agrega,
// nunca se modifica; se borra únicamente en cascada con su lead.
type LeadHistory struct {
	ID        int64
	LeadID    int64
	Estado    string
	Usuario   string // nombre del usuario que hizo el cambio
	Timestamp time.Time
}
