package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, material_id, vendor_id, document_id, purchase_type,
		                     quantity, initial_quantity, lot_number, expiration_date,
		                     storage_location, stock_added_date, unit_cost, added_by,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.MaterialID, b.VendorID, b.DocumentID, b.PurchaseType,
		b.Quantity, b.InitialQuantity, b.LotNumber, b.ExpirationDate,
		b.StorageLocation, b.StockAddedDate, b.UnitCost, b.AddedBy,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, material_id, vendor_id, document_id, purchase_type,
		       quantity, initial_quantity, lot_number, expiration_date,
		       storage_location, stock_added_date, unit_cost, added_by,
		       created_at, updated_at
		FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.MaterialID, &b.VendorID, &b.DocumentID, &b.PurchaseType,
		&b.Quantity, &b.InitialQuantity, &b.LotNumber, &b.ExpirationDate,
		&b.StorageLocation, &b.StockAddedDate, &b.UnitCost, &b.AddedBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Update solo toca campos editables. La cantidad nunca se modifica por aquí:
// eso es exclusivo de DecrementQuantity / RestoreQuantity.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches
		SET vendor_id = $2, document_id = $3, purchase_type = $4, lot_number = $5,
		    expiration_date = $6, storage_location = $7, unit_cost = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.VendorID, b.DocumentID, b.PurchaseType, b.LotNumber,
		b.ExpirationDate, b.StorageLocation, b.UnitCost, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementQuantity descuenta stock de forma condicional: la condición
// quantity >= n en el WHERE evita lecturas perdidas entre procesos
// concurrentes. Devuelve false si el lote no existe o no alcanza el stock.
func (r *BatchRepo) DecrementQuantity(ctx context.Context, id string, n int) (bool, error) {
	query := `
		UPDATE batches
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`
	cmd, err := r.q.Exec(ctx, query, id, n)
	if err != nil {
		return false, fmt.Errorf("decrement batch: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// RestoreQuantity devuelve stock al lote, acotado por la cantidad inicial.
// Devuelve false si la restauración excedería initial_quantity.
func (r *BatchRepo) RestoreQuantity(ctx context.Context, id string, n int) (bool, error) {
	query := `
		UPDATE batches
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 <= initial_quantity`
	cmd, err := r.q.Exec(ctx, query, id, n)
	if err != nil {
		return false, fmt.Errorf("restore batch: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
