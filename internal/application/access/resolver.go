// Package access implementa el control de acceso jerárquico del CRM: el
// cálculo del conjunto de usuarios visibles para un usuario dado (según el
// árbol de reporte) y la clasificación por equipos.
package access

import (
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
	"github.com/alluma/crm-api/pkg/logger"
)

// Scope es el conjunto de ids de usuario accesibles para un usuario.
type Scope map[int64]struct{}

// Contains indica si un id está dentro del alcance.
func (s Scope) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// ContainsOwner aplica la política de visibilidad sobre un dueño opcional:
// un recurso sin dueño (vendedor nil) es visible para cualquiera hasta que
// alguien lo reclame.
func (s Scope) ContainsOwner(id *int64) bool {
	if id == nil {
		return true
	}
	return s.Contains(*id)
}

// Resolver calcula el alcance jerárquico de un usuario. Toda la tabla de
// usuarios se relee en cada resolución: es chica y así el alcance nunca queda
// desactualizado entre requests.
type Resolver struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewResolver construye el resolver con el repositorio de usuarios.
func NewResolver(users repository.UserRepository, log *logger.Logger) *Resolver {
	return &Resolver{users: users, log: log}
}

// AccessibleIDs devuelve el conjunto de ids que el usuario puede ver:
// él mismo más todos sus subordinados transitivos, o todos los usuarios si
// su rol es de nivel máximo (owner, director).
//
// Nunca retorna error: ante usuario inexistente o falla de storage degrada a
// {callerID} (cerrado, jamás abierto) y registra el problema. El conjunto
// devuelto siempre contiene callerID.
func (r *Resolver) AccessibleIDs(callerID int64) Scope {
	selfOnly := Scope{callerID: {}}

	users, err := r.users.List()
	if err != nil {
		r.log.Error().Err(err).Int64("caller_id", callerID).
			Msg("resolución de alcance degradada a acceso mínimo")
		return selfOnly
	}

	var caller *entity.User
	for _, u := range users {
		if u.ID == callerID {
			caller = u
			break
		}
	}
	if caller == nil {
		r.log.Warn().Int64("caller_id", callerID).
			Msg("usuario inexistente en resolución de alcance")
		return selfOnly
	}

	if caller.Role.IsTopTier() {
		all := make(Scope, len(users))
		for _, u := range users {
			all[u.ID] = struct{}{}
		}
		return all
	}

	// Adyacencia padre -> hijos directos y luego DFS iterativo. El resultado
	// es un set, el orden de recorrido no importa.
	children := make(map[int64][]int64, len(users))
	for _, u := range users {
		if u.ReportsTo != nil {
			children[*u.ReportsTo] = append(children[*u.ReportsTo], u.ID)
		}
	}

	scope := Scope{callerID: {}}
	stack := append([]int64(nil), children[callerID]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if scope.Contains(id) {
			continue // árbol corrupto con ciclo: no repetir nodos
		}
		scope[id] = struct{}{}
		stack = append(stack, children[id]...)
	}
	return scope
}

// WouldCreateCycle verifica si asignar newReportsTo como jefe de userID
// formaría un ciclo en la cadena de reporte. Se invoca en cada escritura de
// reportsTo: un ciclo haría no-terminante la resolución jerárquica.
// La caminata está acotada por la cantidad total de usuarios.
func WouldCreateCycle(users []*entity.User, userID int64, newReportsTo *int64) bool {
	if newReportsTo == nil {
		return false
	}
	if *newReportsTo == userID {
		return true
	}
	byID := make(map[int64]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	current := newReportsTo
	for hops := 0; hops <= len(users); hops++ {
		if current == nil {
			return false
		}
		if *current == userID {
			return true
		}
		ancestor := byID[*current]
		if ancestor == nil {
			return false
		}
		current = ancestor.ReportsTo
	}
	// Se agotó la cota: la cadena ya estaba corrupta, rechazar la escritura.
	return true
}
