package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// Casos de uso de las entidades de referencia (proveedores, marcas, categorías,
// médicos). Todos requieren "Manage Settings" para mutar; la eliminación está
// bloqueada mientras la entidad siga referenciada (ErrInUse desde el repo).

// VendorUseCase proveedores.
type VendorUseCase struct {
	repo  repository.VendorRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, g *guard.Guard, a *audit.Logger) *VendorUseCase {
	return &VendorUseCase{repo: repo, guard: g, audit: a}
}

// List devuelve todos los proveedores.
func (uc *VendorUseCase) List(ctx context.Context) ([]dto.NamedResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(items))
	for _, v := range items {
		out = append(out, dto.NamedResponse{ID: v.ID, Name: v.Name, CreatedAt: v.CreatedAt})
	}
	return out, nil
}

// Create crea un proveedor. Requiere "Manage Settings".
func (uc *VendorUseCase) Create(ctx context.Context, actorID string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vendor{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "vendors", v.ID, nil, v, actor.ID, "proveedor creado: "+v.Name)
	return &dto.NamedResponse{ID: v.ID, Name: v.Name, CreatedAt: v.CreatedAt}, nil
}

// Update renombra un proveedor. Requiere "Manage Settings".
func (uc *VendorUseCase) Update(ctx context.Context, actorID, id string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	old := *v
	v.Name = name
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "vendors", v.ID, old, v, actor.ID, "proveedor actualizado: "+v.Name)
	return &dto.NamedResponse{ID: v.ID, Name: v.Name, CreatedAt: v.CreatedAt}, nil
}

// Delete elimina un proveedor sin lotes asociados. Requiere "Manage Settings".
func (uc *VendorUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return err
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "vendors", id, v, nil, actor.ID, "proveedor eliminado: "+v.Name)
	return nil
}

// BrandUseCase marcas.
type BrandUseCase struct {
	repo  repository.BrandRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository, g *guard.Guard, a *audit.Logger) *BrandUseCase {
	return &BrandUseCase{repo: repo, guard: g, audit: a}
}

// List devuelve todas las marcas.
func (uc *BrandUseCase) List(ctx context.Context) ([]dto.NamedResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(items))
	for _, b := range items {
		out = append(out, dto.NamedResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
	}
	return out, nil
}

// Create crea una marca. Requiere "Manage Settings".
func (uc *BrandUseCase) Create(ctx context.Context, actorID string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "brands", b.ID, nil, b, actor.ID, "marca creada: "+b.Name)
	return &dto.NamedResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}, nil
}

// Update renombra una marca. Requiere "Manage Settings".
func (uc *BrandUseCase) Update(ctx context.Context, actorID, id string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	old := *b
	b.Name = name
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "brands", b.ID, old, b, actor.ID, "marca actualizada: "+b.Name)
	return &dto.NamedResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}, nil
}

// Delete elimina una marca sin materiales asociados. Requiere "Manage Settings".
func (uc *BrandUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "brands", id, b, nil, actor.ID, "marca eliminada: "+b.Name)
	return nil
}

// MaterialTypeUseCase categorías de material.
type MaterialTypeUseCase struct {
	repo  repository.MaterialTypeRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewMaterialTypeUseCase construye el caso de uso.
func NewMaterialTypeUseCase(repo repository.MaterialTypeRepository, g *guard.Guard, a *audit.Logger) *MaterialTypeUseCase {
	return &MaterialTypeUseCase{repo: repo, guard: g, audit: a}
}

// List devuelve todas las categorías.
func (uc *MaterialTypeUseCase) List(ctx context.Context) ([]dto.NamedResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(items))
	for _, t := range items {
		out = append(out, dto.NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt})
	}
	return out, nil
}

// Create crea una categoría. Requiere "Manage Settings".
func (uc *MaterialTypeUseCase) Create(ctx context.Context, actorID string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.MaterialType{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "material_types", t.ID, nil, t, actor.ID, "categoría creada: "+t.Name)
	return &dto.NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}, nil
}

// Update renombra una categoría. Requiere "Manage Settings".
func (uc *MaterialTypeUseCase) Update(ctx context.Context, actorID, id string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	old := *t
	t.Name = name
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "material_types", t.ID, old, t, actor.ID, "categoría actualizada: "+t.Name)
	return &dto.NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}, nil
}

// Delete elimina una categoría sin materiales asociados. Requiere "Manage Settings".
func (uc *MaterialTypeUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "material_types", id, t, nil, actor.ID, "categoría eliminada: "+t.Name)
	return nil
}

// PhysicianUseCase médicos.
type PhysicianUseCase struct {
	repo  repository.PhysicianRepository
	guard *guard.Guard
	audit *audit.Logger
}

// NewPhysicianUseCase construye el caso de uso.
func NewPhysicianUseCase(repo repository.PhysicianRepository, g *guard.Guard, a *audit.Logger) *PhysicianUseCase {
	return &PhysicianUseCase{repo: repo, guard: g, audit: a}
}

// List devuelve todos los médicos.
func (uc *PhysicianUseCase) List(ctx context.Context) ([]dto.PhysicianResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PhysicianResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.PhysicianResponse{ID: p.ID, Name: p.Name, Specialty: p.Specialty, CreatedAt: p.CreatedAt})
	}
	return out, nil
}

// Create crea un médico. Requiere "Manage Settings".
func (uc *PhysicianUseCase) Create(ctx context.Context, actorID string, in dto.PhysicianRequest) (*dto.PhysicianResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Physician{ID: uuid.New().String(), Name: name, Specialty: in.Specialty, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "physicians", p.ID, nil, p, actor.ID, "médico creado: "+p.Name)
	return &dto.PhysicianResponse{ID: p.ID, Name: p.Name, Specialty: p.Specialty, CreatedAt: p.CreatedAt}, nil
}

// Update modifica un médico. Requiere "Manage Settings".
func (uc *PhysicianUseCase) Update(ctx context.Context, actorID, id string, in dto.PhysicianRequest) (*dto.PhysicianResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	old := *p
	p.Name = name
	p.Specialty = in.Specialty
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "physicians", p.ID, old, p, actor.ID, "médico actualizado: "+p.Name)
	return &dto.PhysicianResponse{ID: p.ID, Name: p.Name, Specialty: p.Specialty, CreatedAt: p.CreatedAt}, nil
}

// Delete elimina un médico. Requiere "Manage Settings".
func (uc *PhysicianUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermManageSettings)
	if err != nil {
		return err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "physicians", id, p, nil, actor.ID, "médico eliminado: "+p.Name)
	return nil
}
