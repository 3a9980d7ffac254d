package dto

import "time"

// CreateNoteRequest entrada para crear una nota interna sobre un lead.
type CreateNoteRequest struct {
	LeadID int64  `json:"lead_id" validate:"required"`
	Texto  string `json:"texto" validate:"required"`
}

// NoteResponse salida de una nota interna.
type NoteResponse struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"lead_id"`
	Texto     string    `json:"texto"`
	Usuario   string    `json:"usuario"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
