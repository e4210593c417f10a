package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch.
// La cantidad solo se modifica vía DecrementQuantity/RestoreQuantity: ambos son
// escrituras condicionales que la DB serializa, para que dos consumos
// concurrentes no pasen la validación con una lectura obsoleta.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// Update persiste campos editables (lote, vencimiento, ubicación, proveedor,
	// documento, tipo de compra, costo). Nunca toca quantity/initial_quantity.
	Update(ctx context.Context, b *entity.Batch) error
	// Delete falla con domain.ErrInUse si existen registros de uso del lote.
	Delete(ctx context.Context, id string) error
	// DecrementQuantity resta n unidades solo si hay disponibles:
	//   UPDATE ... SET quantity = quantity - n WHERE id = $1 AND quantity >= n
	// Devuelve false si la condición no se cumplió (sin cambio).
	DecrementQuantity(ctx context.Context, id string, n int) (bool, error)
	// RestoreQuantity devuelve n unidades al lote sin superar initial_quantity.
	// Devuelve false si la condición no se cumplió (sin cambio).
	RestoreQuantity(ctx context.Context, id string, n int) (bool, error)
}
