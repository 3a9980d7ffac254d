// Package assignment implementa la asignación automática de leads que llegan
// sin vendedor: rotación round-robin sobre todos los vendedores activos, o
// elección aleatoria dentro del equipo del lead.
package assignment

import (
	"math/rand"
	"sync"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/domain/repository"
	"github.com/alluma/crm-api/pkg/logger"
)

// Estrategias de asignación configurables.
const (
	StrategyRoundRobin = "round_robin"
	StrategyTeamRandom = "team_random"
)

// Engine elige el vendedor para un lead sin asignar. Nunca falla la creación
// del lead: si no hay vendedores disponibles devuelve nil (sin asignar).
type Engine struct {
	users    repository.UserRepository
	leads    repository.LeadRepository
	teams    *access.Classifier
	strategy string
	strict   bool
	mu       sync.Mutex
	intn     func(n int) int // inyectable en tests; por defecto rand.Intn
	log      *logger.Logger
}

// NewEngine construye el motor de asignación. teams solo se usa con la
// estrategia team_random; puede ser nil con round_robin.
func NewEngine(users repository.UserRepository, leads repository.LeadRepository, teams *access.Classifier, strategy string, strict bool, log *logger.Logger) *Engine {
	return &Engine{
		users:    users,
		leads:    leads,
		teams:    teams,
		strategy: strategy,
		strict:   strict,
		intn:     rand.Intn,
		log:      log,
	}
}

// NextSeller devuelve el id del vendedor a asignar, o nil para dejar el lead
// sin asignar. team es la etiqueta de equipo del lead (solo team_random); un
// lead sin etiqueta entra por el equipo por defecto configurado, igual que un
// vendedor huérfano en la clasificación.
func (e *Engine) NextSeller(team string) *int64 {
	if e.strategy == StrategyTeamRandom {
		t := access.Team(team)
		if t == "" && e.teams != nil {
			t = e.teams.Default()
		}
		return e.nextTeamRandom(t)
	}
	return e.nextRoundRobin()
}

// nextRoundRobin asigna al sucesor del último vendedor asignado dentro del
// roster activo ordenado por id, con vuelta circular al principio.
//
// La lectura del "último asignado" y la escritura del lead nuevo no son
// atómicas entre requests concurrentes: dos creaciones simultáneas pueden
// elegir el mismo sucesor. Es una política de equidad best-effort; el modo
// strict serializa la elección dentro del proceso.
func (e *Engine) nextRoundRobin() *int64 {
	if e.strict {
		e.mu.Lock()
		defer e.mu.Unlock()
	}

	sellers, err := e.users.ListActiveSellers()
	if err != nil {
		e.log.Error().Err(err).Msg("rotación: no se pudo leer el roster, lead queda sin asignar")
		return nil
	}
	if len(sellers) == 0 {
		return nil
	}

	last, err := e.leads.LastAssignedSeller()
	if err != nil {
		e.log.Error().Err(err).Msg("rotación: no se pudo leer el último asignado, lead queda sin asignar")
		return nil
	}
	if last == nil {
		id := sellers[0].ID
		return &id
	}

	// Si el último asignado ya no está en el roster (baja o desactivación),
	// idx queda en -1 y la rotación reinicia en el primer vendedor.
	idx := -1
	for i, s := range sellers {
		if s.ID == *last {
			idx = i
			break
		}
	}
	id := sellers[(idx+1)%len(sellers)].ID
	return &id
}

// nextTeamRandom elige uniformemente al azar entre los vendedores activos del
// equipo. Pool vacío -> sin asignar.
func (e *Engine) nextTeamRandom(team access.Team) *int64 {
	if e.teams == nil {
		e.log.Warn().Msg("estrategia team_random sin clasificador de equipos configurado")
		return nil
	}
	pool := e.teams.SellersForTeam(team)
	if len(pool) == 0 {
		return nil
	}
	id := pool[e.intn(len(pool))]
	return &id
}
