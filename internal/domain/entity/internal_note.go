package entity

import "time"

// InternalNote es una nota interna sobre un lead. La puede borrar su autor
// o un usuario de nivel gerencial.
type InternalNote struct {
	ID        int64
	LeadID    int64
	Texto     string
	Usuario   string // nombre del autor al momento de crear la nota
	UserID    int64
	Timestamp time.Time
}
