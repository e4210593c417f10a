package repository

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// DataLogFilter facetas del listado de bitácora. Las fechas llegan ya
// expandidas a límites de día por el caso de uso ([desde 00:00, hasta 23:59:59.999...]).
type DataLogFilter struct {
	TableName string
	Action    string
	UserID    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// DataLogRepository puerto de la bitácora append-only.
// No existe Update ni Delete: las filas son permanentes una vez escritas.
type DataLogRepository interface {
	Append(ctx context.Context, l *entity.DataLog) error
	List(ctx context.Context, f DataLogFilter, limit, offset int) ([]entity.DataLog, int, error)
	// Recent devuelve las n entradas más recientes, descendente por timestamp.
	Recent(ctx context.Context, n int) ([]entity.DataLog, error)
}
