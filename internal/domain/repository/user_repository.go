package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y sus permisos.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// GetByID devuelve el usuario con sus permisos cargados; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// SetPermissions reemplaza el conjunto de permisos del usuario.
	SetPermissions(ctx context.Context, userID string, permissions []string) error
}
