package guard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// fakeUserRepo implementa repository.UserRepository sobre un mapa.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) List(_ context.Context) ([]entity.User, error) { return nil, nil }
func (f *fakeUserRepo) SetPermissions(_ context.Context, id string, perms []string) error {
	f.users[id].Permissions = perms
	return nil
}

func newGuard(perms ...string) *guard.Guard {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Name: "Laura", Status: entity.UserStatusActive, Permissions: perms},
	}}
	return guard.New(repo)
}

func TestRequire_SinIdentidad(t *testing.T) {
	g := newGuard(entity.PermEditMaterials)
	_, err := g.Require(context.Background(), "", entity.PermEditMaterials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Identidad que no existe en la DB tampoco pasa
	_, err = g.Require(context.Background(), "nadie", entity.PermEditMaterials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequire_SinPermiso(t *testing.T) {
	g := newGuard(entity.PermManageSettings)
	_, err := g.Require(context.Background(), "u1", entity.PermEditMaterials)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRequire_ConPermiso(t *testing.T) {
	g := newGuard(entity.PermEditMaterials)
	u, err := g.Require(context.Background(), "u1", entity.PermEditMaterials)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

// Variantes históricas del nombre del permiso deben tratarse como equivalentes.
func TestRequire_PermisoNormalizado(t *testing.T) {
	g := newGuard("EditMaterials")
	_, err := g.Require(context.Background(), "u1", "Edit Materials")
	assert.NoError(t, err)

	g = newGuard("edit_materials")
	_, err = g.Require(context.Background(), "u1", "Edit Materials")
	assert.NoError(t, err)
}

func TestRequire_UsuarioInactivo(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Status: entity.UserStatusInactive, Permissions: []string{entity.PermEditMaterials}},
	}}
	_, err := guard.New(repo).Require(context.Background(), "u1", entity.PermEditMaterials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"Edit Materials":   "editmaterials",
		"EditMaterials":    "editmaterials",
		"edit_materials":   "editmaterials",
		" Manage-Settings": "managesettings",
	}
	for in, want := range cases {
		assert.Equal(t, want, guard.NormalizeTag(in), in)
	}
}
