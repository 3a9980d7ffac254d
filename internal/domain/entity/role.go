package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Role es el rol cerrado de un usuario dentro de la concesionaria.
type Role string

// Roles válidos. La jerarquía de mando va de owner (máximo) a vendedor.
// "admin" es un rol operativo equivalente a vendedor para la asignación de leads.
const (
	RoleOwner      Role = "owner"
	RoleDirector   Role = "director"
	RoleGerente    Role = "gerente"
	RoleSupervisor Role = "supervisor"
	RoleVendedor   Role = "vendedor"
	RoleAdmin      Role = "admin"
)

// foldTransformer elimina diacríticos: "dueño" -> "dueno".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeRole lleva un rol en texto libre a su forma canónica.
// Acepta mayúsculas, acentos y el alias histórico "dueño" para owner.
// Devuelve false si el texto no corresponde a ningún rol conocido.
func NormalizeRole(s string) (Role, bool) {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(s))
	}
	switch folded {
	case "owner", "dueno":
		return RoleOwner, true
	case "director":
		return RoleDirector, true
	case "gerente":
		return RoleGerente, true
	case "supervisor":
		return RoleSupervisor, true
	case "vendedor":
		return RoleVendedor, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// IsTopTier indica si el rol tiene visibilidad total (sin filtro jerárquico).
func (r Role) IsTopTier() bool {
	return r == RoleOwner || r == RoleDirector
}

// IsManagerTier indica si el rol puede administrar usuarios.
func (r Role) IsManagerTier() bool {
	return r == RoleOwner || r == RoleDirector || r == RoleGerente
}

// IsSeller indica si el rol entra en la rotación de asignación de leads.
func (r Role) IsSeller() bool {
	return r == RoleVendedor || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
