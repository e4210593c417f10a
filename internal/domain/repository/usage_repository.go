package repository

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// UsageFilter facetas del listado de consumos.
type UsageFilter struct {
	BatchID    string
	MaterialID string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// UsageRecordRepository define el puerto de persistencia para UsageRecord.
type UsageRecordRepository interface {
	Create(ctx context.Context, u *entity.UsageRecord) error
	GetByID(ctx context.Context, id string) (*entity.UsageRecord, error)
	List(ctx context.Context, f UsageFilter, limit, offset int) ([]entity.UsageRecord, int, error)
	Delete(ctx context.Context, id string) error
}
