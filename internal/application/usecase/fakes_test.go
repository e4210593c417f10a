package usecase_test

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// Fakes en memoria compartidos por los tests de casos de uso. Implementan los
// puertos de repositorio con la misma semántica que espera el código bajo
// prueba (decremento condicional, restauración acotada, append-only).

// ── usuarios / guard ─────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetPermissions(_ context.Context, userID string, permissions []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Permissions = permissions
	return nil
}

// ── bitácora ─────────────────────────────────────────────────────────────────

type fakeDataLogRepo struct {
	mu      sync.Mutex
	entries []entity.DataLog
}

func (r *fakeDataLogRepo) Append(_ context.Context, l *entity.DataLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *l)
	return nil
}

func (r *fakeDataLogRepo) List(_ context.Context, f repository.DataLogFilter, limit, offset int) ([]entity.DataLog, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.DataLog(nil), r.entries...), len(r.entries), nil
}

func (r *fakeDataLogRepo) Recent(_ context.Context, n int) ([]entity.DataLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]entity.DataLog, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *fakeDataLogRepo) all() []entity.DataLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.DataLog(nil), r.entries...)
}

// ── lotes ────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.Batch
}

func newFakeBatchRepo(batches ...*entity.Batch) *fakeBatchRepo {
	r := &fakeBatchRepo{batches: make(map[string]*entity.Batch)}
	for _, b := range batches {
		r.batches[b.ID] = b
	}
	return r
}

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

// DecrementQuantity replica el UPDATE condicional: solo aplica si alcanza el stock.
func (r *fakeBatchRepo) DecrementQuantity(_ context.Context, id string, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok || b.Quantity < n {
		return false, nil
	}
	b.Quantity -= n
	return true, nil
}

func (r *fakeBatchRepo) RestoreQuantity(_ context.Context, id string, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok || b.Quantity+n > b.InitialQuantity {
		return false, nil
	}
	b.Quantity += n
	return true, nil
}

func (r *fakeBatchRepo) quantity(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.batches[id]; ok {
		return b.Quantity
	}
	return -1
}

// ── consumos ─────────────────────────────────────────────────────────────────

type fakeUsageRepo struct {
	mu      sync.Mutex
	records map[string]*entity.UsageRecord
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{records: make(map[string]*entity.UsageRecord)}
}

func (r *fakeUsageRepo) Create(_ context.Context, u *entity.UsageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[u.ID] = u
	return nil
}

func (r *fakeUsageRepo) GetByID(_ context.Context, id string) (*entity.UsageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsageRepo) List(_ context.Context, f repository.UsageFilter, limit, offset int) ([]entity.UsageRecord, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.UsageRecord, 0, len(r.records))
	for _, u := range r.records {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeUsageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeUsageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// ── transacciones ────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el cuerpo directamente contra los fakes. No hay
// rollback real: los tests se apoyan en que el decremento condicional es lo
// último que puede fallar antes del insert.
type fakeTxRunner struct {
	batches *fakeBatchRepo
	usage   *fakeUsageRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(repository.BatchRepository, repository.UsageRecordRepository) error) error {
	return fn(t.batches, t.usage)
}

// ── materiales y catálogos ───────────────────────────────────────────────────

type fakeMaterialRepo struct {
	mu        sync.Mutex
	materials map[string]*entity.Material
	rows      []repository.MaterialWithBatches // respuesta fija de Search
	total     int
	deleteErr error
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]*entity.Material)}
}

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetWithBatches(_ context.Context, id string) (*repository.MaterialWithBatches, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	return &repository.MaterialWithBatches{
		Material: *m,
		Batches:  []repository.BatchWithVendor{},
	}, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.materials, id)
	return nil
}

func (r *fakeMaterialRepo) Search(_ context.Context, q repository.MaterialQuery) ([]repository.MaterialWithBatches, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows, r.total, nil
}

func (r *fakeMaterialRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.materials)
}

type fakeBrandRepo struct {
	brands map[string]*entity.Brand
}

func (r *fakeBrandRepo) Create(_ context.Context, b *entity.Brand) error { return nil }
func (r *fakeBrandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	return r.brands[id], nil
}
func (r *fakeBrandRepo) List(_ context.Context) ([]entity.Brand, error)  { return nil, nil }
func (r *fakeBrandRepo) Update(_ context.Context, b *entity.Brand) error { return nil }
func (r *fakeBrandRepo) Delete(_ context.Context, id string) error       { return nil }

type fakeTypeRepo struct {
	types map[string]*entity.MaterialType
}

func (r *fakeTypeRepo) Create(_ context.Context, t *entity.MaterialType) error { return nil }
func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (*entity.MaterialType, error) {
	return r.types[id], nil
}
func (r *fakeTypeRepo) List(_ context.Context) ([]entity.MaterialType, error)  { return nil, nil }
func (r *fakeTypeRepo) Update(_ context.Context, t *entity.MaterialType) error { return nil }
func (r *fakeTypeRepo) Delete(_ context.Context, id string) error              { return nil }

// ── armado común ─────────────────────────────────────────────────────────────

func newTestGuard(users ...*entity.User) *guard.Guard {
	return guard.New(newFakeUserRepo(users...))
}

func newTestAudit(repo *fakeDataLogRepo) *audit.Logger {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_audit_failures_total"})
	return audit.New(repo, logger.Nop(), counter)
}

func activeUser(id string, perms ...string) *entity.User {
	return &entity.User{ID: id, Email: id + "@clinic.test", Name: "Test", Status: entity.UserStatusActive, Permissions: perms}
}
