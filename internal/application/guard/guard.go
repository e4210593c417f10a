package guard

import (
	"context"
	"strings"
	"unicode"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// Guard centraliza el control de acceso de toda mutación:
// resuelve la identidad del actor y verifica el permiso nombrado contra su
// conjunto de permisos, ANTES de tocar el store. Ningún caso de uso hace
// comparación de permisos por su cuenta.
type Guard struct {
	users repository.UserRepository
}

// New construye el guard.
func New(users repository.UserRepository) *Guard {
	return &Guard{users: users}
}

// Require resuelve al actor y exige el permiso indicado.
// Falla con domain.ErrUnauthorized si no hay identidad (o no existe / está
// inactiva) y con domain.ErrForbidden si le falta el permiso.
func (g *Guard) Require(ctx context.Context, actorID, permission string) (*entity.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrUnauthorized
	}
	if !HasPermission(user.Permissions, permission) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// HasPermission compara por etiqueta normalizada: pertenece si alguna de las
// concedidas normaliza igual que la requerida.
func HasPermission(granted []string, required string) bool {
	want := NormalizeTag(required)
	for _, p := range granted {
		if NormalizeTag(p) == want {
			return true
		}
	}
	return false
}

// NormalizeTag reduce un nombre de permiso a minúsculas alfanuméricas.
// La DB guarda variantes históricas ("EditMaterials", "Edit Materials",
// "edit_materials"); todas deben tratarse como el mismo permiso.
func NormalizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
