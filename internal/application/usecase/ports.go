package usecase

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción del store.
// El descuento condicional del lote y el insert del consumo deben aplicarse
// como unidad atómica; fuera de eso el motor no mantiene sagas multi-paso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		usageRepo repository.UsageRecordRepository,
	) error) error
}
