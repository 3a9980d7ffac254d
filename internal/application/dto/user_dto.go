package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required"`
	ReportsTo *int64 `json:"reportsTo"`
	Active    *bool  `json:"active"`
}

// UpdateUserRequest entrada para editar un usuario. Password vacío = no cambiar.
type UpdateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	ReportsTo *int64 `json:"reportsTo"`
	Active    *bool  `json:"active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ReportsTo *int64    `json:"reportsTo"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login. AllowInactiveUsers lo usa el panel de
// administración para entrar con cuentas desactivadas.
type LoginRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required"`
	AllowInactiveUsers bool   `json:"allowInactiveUsers"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Ok    bool         `json:"ok"`
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse salida de la verificación de token.
type VerifyResponse struct {
	Ok   bool         `json:"ok"`
	User UserResponse `json:"user"`
}
