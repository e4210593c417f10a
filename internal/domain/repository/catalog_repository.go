package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// Puertos de persistencia para las entidades de referencia.
// Delete falla con domain.ErrInUse mientras la entidad esté referenciada
// (la restricción FK de la DB es la fuente de verdad).

// VendorRepository proveedores.
type VendorRepository interface {
	Create(ctx context.Context, v *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	List(ctx context.Context) ([]entity.Vendor, error)
	Update(ctx context.Context, v *entity.Vendor) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository marcas.
type BrandRepository interface {
	Create(ctx context.Context, b *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	List(ctx context.Context) ([]entity.Brand, error)
	Update(ctx context.Context, b *entity.Brand) error
	Delete(ctx context.Context, id string) error
}

// MaterialTypeRepository categorías de material.
type MaterialTypeRepository interface {
	Create(ctx context.Context, t *entity.MaterialType) error
	GetByID(ctx context.Context, id string) (*entity.MaterialType, error)
	List(ctx context.Context) ([]entity.MaterialType, error)
	Update(ctx context.Context, t *entity.MaterialType) error
	Delete(ctx context.Context, id string) error
}

// PhysicianRepository médicos.
type PhysicianRepository interface {
	Create(ctx context.Context, p *entity.Physician) error
	GetByID(ctx context.Context, id string) (*entity.Physician, error)
	List(ctx context.Context) ([]entity.Physician, error)
	Update(ctx context.Context, p *entity.Physician) error
	Delete(ctx context.Context, id string) error
}
