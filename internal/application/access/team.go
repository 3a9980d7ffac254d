package access

import (
	"strings"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
	"github.com/alluma/crm-api/pkg/logger"
)

// Team identifica un equipo comercial. TeamBoth significa visibilidad sobre
// ambos equipos (roles de nivel máximo).
type Team string

const TeamBoth Team = "both"

// Classifier clasifica usuarios en equipos caminando la cadena de reporte
// hacia arriba hasta el primer gerente de equipo. Es la partición gruesa de
// acceso usada como alternativa al cálculo de subordinados completo.
type Classifier struct {
	users       repository.UserRepository
	managers    map[string]Team // nombre de gerente (minúsculas) -> equipo
	defaultTeam Team
	log         *logger.Logger
}

// NewClassifier construye el clasificador. managers mapea nombre de gerente a
// equipo; defaultTeam es la política explícita para usuarios cuya cadena no
// alcanza a ningún gerente mapeado (antes era un literal silencioso).
func NewClassifier(users repository.UserRepository, managers map[string]string, defaultTeam string, log *logger.Logger) *Classifier {
	m := make(map[string]Team, len(managers))
	for name, team := range managers {
		m[strings.ToLower(name)] = Team(team)
	}
	return &Classifier{users: users, managers: m, defaultTeam: Team(defaultTeam), log: log}
}

// Default devuelve el equipo por defecto configurado.
func (c *Classifier) Default() Team {
	return c.defaultTeam
}

// Team devuelve el equipo del usuario: TeamBoth para roles de nivel máximo,
// el equipo del primer gerente mapeado en su cadena de reporte, o el equipo
// por defecto configurado si la cadena se agota o el usuario no existe.
// La caminata está acotada por la cantidad de usuarios (guardia anti-ciclo).
func (c *Classifier) Team(userID int64) Team {
	users, err := c.users.List()
	if err != nil {
		c.log.Error().Err(err).Int64("user_id", userID).
			Msg("clasificación de equipo degradada al equipo por defecto")
		return c.defaultTeam
	}
	byID := make(map[int64]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	u := byID[userID]
	if u == nil {
		return c.defaultTeam
	}
	if u.Role.IsTopTier() {
		return TeamBoth
	}

	current := u
	for hops := 0; hops <= len(users); hops++ {
		if current.Role == entity.RoleGerente {
			if team, ok := c.managers[strings.ToLower(current.Name)]; ok {
				return team
			}
		}
		if current.ReportsTo == nil {
			break
		}
		next := byID[*current.ReportsTo]
		if next == nil {
			break // subárbol huérfano: jefe referenciado no existe
		}
		current = next
	}
	return c.defaultTeam
}

// SellersForTeam devuelve los ids de vendedores activos que descienden
// estructuralmente del gerente del equipo (a través del nivel supervisor).
// Es el pool de la asignación aleatoria por equipo; vacío si el equipo no
// tiene gerente mapeado o no tiene vendedores.
func (c *Classifier) SellersForTeam(team Team) []int64 {
	users, err := c.users.List()
	if err != nil {
		c.log.Error().Err(err).Str("team", string(team)).
			Msg("no se pudo resolver el pool de vendedores del equipo")
		return nil
	}

	children := make(map[int64][]int64, len(users))
	byID := make(map[int64]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
		if u.ReportsTo != nil {
			children[*u.ReportsTo] = append(children[*u.ReportsTo], u.ID)
		}
	}

	var sellers []int64
	seen := make(map[int64]struct{})
	for _, u := range users {
		if u.Role != entity.RoleGerente {
			continue
		}
		if c.managers[strings.ToLower(u.Name)] != team {
			continue
		}
		stack := append([]int64(nil), children[u.ID]...)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if d := byID[id]; d != nil && d.Active && d.Role == entity.RoleVendedor {
				sellers = append(sellers, id)
			}
			stack = append(stack, children[id]...)
		}
	}
	return sellers
}
