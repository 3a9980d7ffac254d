package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLeadNotFound       = errors.New("lead no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol desconocido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrOwnerProtected     = errors.New("no se puede eliminar al dueño del sistema")
	ErrReportsToCycle     = errors.New("la cadena de reporte formaría un ciclo")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
