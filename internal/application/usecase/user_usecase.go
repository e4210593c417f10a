package usecase

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y sus permisos.
type UserUseCase struct {
	repo  repository.UserRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, g *guard.Guard, a *audit.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, guard: g, audit: a}
}

// List devuelve todos los usuarios. Requiere "Manage Settings".
func (uc *UserUseCase) List(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	if _, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings); err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, auth.ToUserResponse(&users[i]))
	}
	return out, nil
}

// SetPermissions reemplaza el conjunto de permisos de un usuario.
// Requiere "Manage Settings". Los nombres se guardan tal cual llegan;
// la tolerancia a variantes vive en la comparación del guard, no aquí.
func (uc *UserUseCase) SetPermissions(ctx context.Context, actorID, userID string, in dto.SetPermissionsRequest) (*dto.UserResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	old := *user

	if err := uc.repo.SetPermissions(ctx, userID, in.Permissions); err != nil {
		return nil, err
	}
	user.Permissions = in.Permissions
	uc.audit.Append(ctx, entity.ActionUpdate, "users", userID, old, user, actor.ID,
		"permisos actualizados: "+user.Email)

	resp := auth.ToUserResponse(user)
	return &resp, nil
}
