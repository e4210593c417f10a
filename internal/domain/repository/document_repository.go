package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, limit, offset int) ([]entity.Document, int, error)
	// Delete falla con domain.ErrInUse si algún lote referencia el documento.
	Delete(ctx context.Context, id string) error
}
