package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// MaterialQuery facetas que se resuelven en SQL (primera etapa del filtro).
// Las facetas de lote (vendor, purchaseType, stockStatus) se refinan en memoria
// en el caso de uso y NO afectan el totalCount que devuelve Search.
type MaterialQuery struct {
	Search         string // substring case-insensitive sobre material, marca, tipo o proveedor de algún lote
	BrandID        string
	MaterialTypeID string
}

// BatchWithVendor lote con el nombre del proveedor ya resuelto (para listados).
type BatchWithVendor struct {
	entity.Batch
	VendorName string
}

// MaterialWithBatches material con nombres de referencia resueltos y sus lotes.
type MaterialWithBatches struct {
	Material         entity.Material
	BrandName        string
	MaterialTypeName string
	Batches          []BatchWithVendor
}

// MaterialRepository define el puerto de persistencia para Material.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetWithBatches devuelve el material con nombres resueltos y todos sus lotes.
	GetWithBatches(ctx context.Context, id string) (*MaterialWithBatches, error)
	Update(ctx context.Context, m *entity.Material) error
	// Delete falla con domain.ErrInUse si el material aún tiene lotes.
	Delete(ctx context.Context, id string) error
	// Search aplica la primera etapa del filtro y devuelve los materiales con sus
	// lotes, ordenados por nombre ascendente (desempate por id), junto con el
	// total de coincidencias de ESTA etapa (para el "X de Y" de la UI).
	Search(ctx context.Context, q MaterialQuery) ([]MaterialWithBatches, int, error)
}
