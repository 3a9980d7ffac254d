package usecase_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Replican el contrato de los
// adaptadores PostgreSQL: nil sin error para filas inexistentes.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUserRepo) Create(u *entity.User) (int64, error) {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListActiveSellers() ([]*entity.User, error) {
	all, _ := f.List()
	var out []*entity.User
	for _, u := range all {
		if u.Active && (u.Role == entity.RoleVendedor || u.Role == entity.RoleAdmin) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeLeadRepo struct {
	leads   map[int64]*entity.Lead
	history []*entity.LeadHistory
	nextID  int64
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[int64]*entity.Lead), nextID: 1}
}

func (f *fakeLeadRepo) Create(l *entity.Lead) (int64, error) {
	cp := *l
	cp.ID = f.nextID
	f.nextID++
	f.leads[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeLeadRepo) GetByID(id int64) (*entity.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeadRepo) Update(l *entity.Lead) error {
	cp := *l
	f.leads[cp.ID] = &cp
	return nil
}

func (f *fakeLeadRepo) Delete(id int64) error {
	delete(f.leads, id)
	return nil
}

func (f *fakeLeadRepo) List() ([]*entity.Lead, error) {
	out := make([]*entity.Lead, 0, len(f.leads))
	for _, l := range f.leads {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLeadRepo) LastAssignedSeller() (*int64, error) {
	var lastID int64
	var vendedor *int64
	for _, l := range f.leads {
		if l.Vendedor != nil && l.ID > lastID {
			lastID = l.ID
			vendedor = l.Vendedor
		}
	}
	return vendedor, nil
}

func (f *fakeLeadRepo) AppendHistory(h *entity.LeadHistory) error {
	cp := *h
	cp.ID = int64(len(f.history) + 1)
	f.history = append(f.history, &cp)
	return nil
}

func (f *fakeLeadRepo) ListHistory(leadID int64) ([]*entity.LeadHistory, error) {
	var out []*entity.LeadHistory
	for _, h := range f.history {
		if h.LeadID == leadID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeLeadRepo) DeleteHistory(leadID int64) error {
	var kept []*entity.LeadHistory
	for _, h := range f.history {
		if h.LeadID != leadID {
			kept = append(kept, h)
		}
	}
	f.history = kept
	return nil
}

// fakeTxRunner ejecuta el callback directo sobre el repositorio en memoria:
// las garantías transaccionales se prueban contra PostgreSQL, no acá.
type fakeTxRunner struct {
	leads repository.LeadRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(leads repository.LeadRepository) error) error {
	return fn(f.leads)
}

type fakeMetaRepo struct {
	metas  map[int64]*entity.Meta
	nextID int64
}

func newFakeMetaRepo() *fakeMetaRepo {
	return &fakeMetaRepo{metas: make(map[int64]*entity.Meta), nextID: 1}
}

func (f *fakeMetaRepo) Upsert(meta *entity.Meta) (*entity.Meta, error) {
	for _, m := range f.metas {
		if m.VendedorID == meta.VendedorID && m.Mes == meta.Mes {
			m.MetaVentas = meta.MetaVentas
			m.MetaLeads = meta.MetaLeads
			return m, nil
		}
	}
	cp := *meta
	cp.ID = f.nextID
	f.nextID++
	f.metas[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeMetaRepo) GetByID(id int64) (*entity.Meta, error) {
	return f.metas[id], nil
}

func (f *fakeMetaRepo) UpdateTargets(id int64, metaVentas decimal.Decimal, metaLeads int) (*entity.Meta, error) {
	m := f.metas[id]
	if m == nil {
		return nil, nil
	}
	m.MetaVentas = metaVentas
	m.MetaLeads = metaLeads
	return m, nil
}

func (f *fakeMetaRepo) Delete(id int64) error {
	delete(f.metas, id)
	return nil
}

func (f *fakeMetaRepo) List() ([]*entity.Meta, error) {
	out := make([]*entity.Meta, 0, len(f.metas))
	for _, m := range f.metas {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeNoteRepo struct {
	notes  map[int64]*entity.InternalNote
	nextID int64
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[int64]*entity.InternalNote), nextID: 1}
}

func (f *fakeNoteRepo) Create(n *entity.InternalNote) (int64, error) {
	cp := *n
	cp.ID = f.nextID
	f.nextID++
	f.notes[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeNoteRepo) GetByID(id int64) (*entity.InternalNote, error) {
	return f.notes[id], nil
}

func (f *fakeNoteRepo) ListByLead(leadID int64) ([]*entity.InternalNote, error) {
	var out []*entity.InternalNote
	for _, n := range f.notes {
		if n.LeadID == leadID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Delete(id int64) error {
	delete(f.notes, id)
	return nil
}
