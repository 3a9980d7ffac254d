package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest entrada para crear un lead. Vendedor admite el nombre de
// campo histórico "vendedor_id" además de "vendedor" (compatibilidad con
// integraciones viejas); AssigneeID() resuelve cuál llegó.
type CreateLeadRequest struct {
	Nombre      string           `json:"nombre" validate:"required"`
	Telefono    string           `json:"telefono" validate:"required"`
	Email       string           `json:"email"`
	Modelo      string           `json:"modelo" validate:"required"`
	FormaPago   string           `json:"formaPago"`
	Presupuesto *decimal.Decimal `json:"presupuesto"`
	InfoUsado   string           `json:"infoUsado"`
	Entrega     bool             `json:"entrega"`
	Fecha       string           `json:"fecha"`
	Fuente      string           `json:"fuente"`
	Vendedor    *int64           `json:"vendedor"`
	VendedorID  *int64           `json:"vendedor_id"`
	Notas       string           `json:"notas"`
	Team        string           `json:"team"`
}

// AssigneeID devuelve el vendedor pedido, aceptando cualquiera de los dos
// nombres de campo. Nil si no se pidió ninguno.
func (r CreateLeadRequest) AssigneeID() *int64 {
	if r.Vendedor != nil {
		return r.Vendedor
	}
	return r.VendedorID
}

// UpdateLeadRequest entrada para actualizar un lead completo.
type UpdateLeadRequest struct {
	Nombre      string           `json:"nombre"`
	Telefono    string           `json:"telefono"`
	Email       string           `json:"email"`
	Modelo      string           `json:"modelo"`
	FormaPago   string           `json:"formaPago"`
	Presupuesto *decimal.Decimal `json:"presupuesto"`
	InfoUsado   string           `json:"infoUsado"`
	Entrega     bool             `json:"entrega"`
	Fecha       string           `json:"fecha"`
	Fuente      string           `json:"fuente"`
	Vendedor    *int64           `json:"vendedor"`
	VendedorID  *int64           `json:"vendedor_id"`
	Notas       string           `json:"notas"`
	Estado      string           `json:"estado"`
}

// AssigneeID igual que en CreateLeadRequest.
func (r UpdateLeadRequest) AssigneeID() *int64 {
	if r.Vendedor != nil {
		return r.Vendedor
	}
	return r.VendedorID
}

// LeadResponse salida de un lead con el nombre del vendedor resuelto.
type LeadResponse struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	Telefono       string          `json:"telefono"`
	Email          string          `json:"email,omitempty"`
	Modelo         string          `json:"modelo"`
	FormaPago      string          `json:"formaPago,omitempty"`
	Presupuesto    decimal.Decimal `json:"presupuesto"`
	InfoUsado      string          `json:"infoUsado,omitempty"`
	Entrega        bool            `json:"entrega"`
	Fecha          string          `json:"fecha,omitempty"`
	Fuente         string          `json:"fuente"`
	Vendedor       *int64          `json:"vendedor"`
	VendedorNombre string          `json:"vendedorNombre,omitempty"`
	Notas          string          `json:"notas"`
	Estado         string          `json:"estado"`
	CreatedBy      int64           `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// LeadHistoryResponse una entrada del historial de estados.
type LeadHistoryResponse struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"leadId"`
	Estado    string    `json:"estado"`
	Usuario   string    `json:"usuario"`
	Timestamp time.Time `json:"timestamp"`
}

// WebhookLeadRequest entrada del webhook de captación externa. Acepta tanto
// los nombres propios del CRM como los alias que manda Meta vía Zapier.
type WebhookLeadRequest struct {
	Nombre      string           `json:"nombre"`
	Telefono    string           `json:"telefono"`
	Email       string           `json:"email"`
	Modelo      string           `json:"modelo"`
	FormaPago   string           `json:"formaPago"`
	Presupuesto *decimal.Decimal `json:"presupuesto"`
	InfoUsado   string           `json:"infoUsado"`
	Entrega     bool             `json:"entrega"`
	Fuente      string           `json:"fuente"`
	Vendedor    *int64           `json:"vendedor"`
	Notas       string           `json:"notas"`
	Team        string           `json:"team"`

	// Alias de Meta/Zapier.
	FullName       string           `json:"full_name"`
	PhoneNumber    string           `json:"phone_number"`
	EmailAddress   string           `json:"email_address"`
	VehicleModel   string           `json:"vehicle_model"`
	Budget         *decimal.Decimal `json:"budget"`
	TradeInInfo    string           `json:"trade_in_info"`
	AdditionalInfo string           `json:"additional_info"`
}

// WebhookLeadResponse salida del webhook.
type WebhookLeadResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	EventID    string       `json:"eventId"`
	Lead       LeadResponse `json:"lead"`
	LeadID     int64        `json:"leadId"`
	AssignedTo string       `json:"assignedTo"`
}

// WebhookPingResponse respuesta del endpoint de prueba del webhook.
type WebhookPingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
