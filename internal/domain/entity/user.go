package entity

import "time"

// User representa un usuario del CRM. ReportsTo forma el árbol de reporte:
// los nodos raíz (owner, director) tienen ReportsTo nil.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca se expone fuera del dominio
	Role         Role
	ReportsTo    *int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
