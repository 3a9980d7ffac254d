package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluma/crm-api/internal/application/access"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de UserRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users   []*entity.User
	listErr error
}

func (f *fakeUserRepo) Create(u *entity.User) (int64, error) { return 0, errors.New("no implementado") }

func (f *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error { return nil }
func (f *fakeUserRepo) Delete(id int64) error       { return nil }

func (f *fakeUserRepo) List() ([]*entity.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) ListActiveSellers() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Active && (u.Role == entity.RoleVendedor || u.Role == entity.RoleAdmin) {
			out = append(out, u)
		}
	}
	return out, nil
}

// user arma un usuario de test; reportsTo 0 significa sin jefe.
func user(id int64, name string, role entity.Role, reportsTo int64) *entity.User {
	u := &entity.User{ID: id, Name: name, Role: role, Active: true}
	if reportsTo != 0 {
		u.ReportsTo = &reportsTo
	}
	return u
}

// concesionaria arma el árbol de prueba:
//
//	1 owner
//	└── 2 director
//	    └── 3 gerente Roberto
//	        ├── 4 supervisor ──┬── 6 vendedor
//	        │                  └── 7 vendedor
//	        ├── 5 supervisor ──── 8 vendedor
//	        └── 9 vendedor
func concesionaria() []*entity.User {
	return []*entity.User{
		user(1, "Dueño", entity.RoleOwner, 0),
		user(2, "Director", entity.RoleDirector, 1),
		user(3, "Roberto", entity.RoleGerente, 2),
		user(4, "Super A", entity.RoleSupervisor, 3),
		user(5, "Super B", entity.RoleSupervisor, 3),
		user(6, "Vende 6", entity.RoleVendedor, 4),
		user(7, "Vende 7", entity.RoleVendedor, 4),
		user(8, "Vende 8", entity.RoleVendedor, 5),
		user(9, "Vende 9", entity.RoleVendedor, 3),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AccessibleIDs
// ──────────────────────────────────────────────────────────────────────────────

func TestAccessibleIDs_OwnerVeTodo(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(1)

	assert.Len(t, scope, 9, "owner debe ver a todos los usuarios")
	for id := int64(1); id <= 9; id++ {
		assert.True(t, scope.Contains(id))
	}
}

func TestAccessibleIDs_DirectorVeTodo(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(2)

	assert.Len(t, scope, 9, "director es nivel máximo, ve a todos")
}

func TestAccessibleIDs_GerenteVeSuSubarbol(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(3)

	assert.Len(t, scope, 7)
	for _, id := range []int64{3, 4, 5, 6, 7, 8, 9} {
		assert.True(t, scope.Contains(id), "gerente debe ver al subordinado %d", id)
	}
	assert.False(t, scope.Contains(1), "gerente no debe ver hacia arriba")
	assert.False(t, scope.Contains(2))
}

func TestAccessibleIDs_SupervisorNoVeOtraRama(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(4)

	assert.Len(t, scope, 3)
	assert.True(t, scope.Contains(4))
	assert.True(t, scope.Contains(6))
	assert.True(t, scope.Contains(7))
	assert.False(t, scope.Contains(8), "el vendedor 8 reporta al supervisor 5, rama ajena")
}

func TestAccessibleIDs_VendedorSoloSeVeASiMismo(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(6)

	assert.Len(t, scope, 1)
	assert.True(t, scope.Contains(6))
}

func TestAccessibleIDs_EsIdempotente(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	first := r.AccessibleIDs(3)
	second := r.AccessibleIDs(3)

	assert.Equal(t, first, second, "dos resoluciones sobre el mismo árbol deben coincidir")
}

// Ante usuario inexistente o falla de storage el alcance degrada a {callerID}:
// cerrado, nunca abierto.
func TestAccessibleIDs_UsuarioInexistente_DegradaASoloElMismo(t *testing.T) {
	r := access.NewResolver(&fakeUserRepo{users: concesionaria()}, logger.Nop())

	scope := r.AccessibleIDs(999)

	assert.Equal(t, access.Scope{999: {}}, scope)
}

func TestAccessibleIDs_FallaDeStorage_DegradaASoloElMismo(t *testing.T) {
	repo := &fakeUserRepo{listErr: errors.New("db caída")}
	r := access.NewResolver(repo, logger.Nop())

	scope := r.AccessibleIDs(3)

	assert.Equal(t, access.Scope{3: {}}, scope)
}

// Un árbol corrupto con ciclo no debe colgar la resolución ni duplicar nodos.
func TestAccessibleIDs_ArbolConCiclo_Termina(t *testing.T) {
	users := []*entity.User{
		user(10, "A", entity.RoleGerente, 11),
		user(11, "B", entity.RoleSupervisor, 10),
		user(12, "C", entity.RoleVendedor, 11),
	}
	r := access.NewResolver(&fakeUserRepo{users: users}, logger.Nop())

	scope := r.AccessibleIDs(10)

	require.True(t, scope.Contains(10))
	assert.True(t, scope.Contains(11))
	assert.True(t, scope.Contains(12))
}

func TestScope_ContainsOwner_NilEsVisible(t *testing.T) {
	scope := access.Scope{1: {}}
	assert.True(t, scope.ContainsOwner(nil), "un recurso sin dueño es visible para cualquiera")

	otro := int64(2)
	assert.False(t, scope.ContainsOwner(&otro))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests WouldCreateCycle
// ──────────────────────────────────────────────────────────────────────────────

func TestWouldCreateCycle(t *testing.T) {
	users := concesionaria()

	t.Run("jefe nil nunca es ciclo", func(t *testing.T) {
		assert.False(t, access.WouldCreateCycle(users, 4, nil))
	})

	t.Run("auto-jefe es ciclo", func(t *testing.T) {
		self := int64(4)
		assert.True(t, access.WouldCreateCycle(users, 4, &self))
	})

	t.Run("subordinado directo como jefe es ciclo", func(t *testing.T) {
		sub := int64(6)
		assert.True(t, access.WouldCreateCycle(users, 4, &sub))
	})

	t.Run("subordinado transitivo como jefe es ciclo", func(t *testing.T) {
		nieto := int64(6)
		assert.True(t, access.WouldCreateCycle(users, 3, &nieto),
			"el vendedor 6 desciende del gerente 3 vía el supervisor 4")
	})

	t.Run("mover a otra rama es válido", func(t *testing.T) {
		otroSuper := int64(5)
		assert.False(t, access.WouldCreateCycle(users, 6, &otroSuper))
	})

	t.Run("cadena ya corrupta rechaza la escritura", func(t *testing.T) {
		corrupto := []*entity.User{
			user(20, "X", entity.RoleSupervisor, 21),
			user(21, "Y", entity.RoleSupervisor, 20),
			user(22, "Z", entity.RoleVendedor, 0),
		}
		jefe := int64(20)
		assert.True(t, access.WouldCreateCycle(corrupto, 22, &jefe),
			"si la cadena existente ya cicla, la cota se agota y se rechaza")
	})
}
