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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, size, brand_id, material_type_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Size, m.BrandID, m.MaterialTypeID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	query := `
		SELECT id, name, size, brand_id, material_type_id, created_at, updated_at
		FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Size, &m.BrandID, &m.MaterialTypeID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// GetWithBatches obtiene el material con nombres resueltos y todos sus lotes.
func (r *MaterialRepo) GetWithBatches(ctx context.Context, id string) (*repository.MaterialWithBatches, error) {
	query := `
		SELECT m.id, m.name, m.size, m.brand_id, m.material_type_id, m.created_at, m.updated_at,
		       b.name, t.name
		FROM materials m
		JOIN brands b ON b.id = m.brand_id
		JOIN material_types t ON t.id = m.material_type_id
		WHERE m.id = $1`
	var row repository.MaterialWithBatches
	err := r.q.QueryRow(ctx, query, id).Scan(
		&row.Material.ID, &row.Material.Name, &row.Material.Size,
		&row.Material.BrandID, &row.Material.MaterialTypeID,
		&row.Material.CreatedAt, &row.Material.UpdatedAt,
		&row.BrandName, &row.MaterialTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material with batches: %w", err)
	}

	batches, err := r.batchesForMaterials(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	row.Batches = batches[id]
	if row.Batches == nil {
		row.Batches = []repository.BatchWithVendor{}
	}
	return &row, nil
}

// Update actualiza nombre, presentación y referencias de un material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, size = $3, brand_id = $4, material_type_id = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Size, m.BrandID, m.MaterialTypeID, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un material. La FK de batches (RESTRICT) bloquea si tiene lotes.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search primera etapa del filtro facetado: search/brand/type en SQL.
// El total devuelto corresponde SOLO a esta etapa; el refinamiento por lote
// ocurre en memoria en el caso de uso y no lo altera.
func (r *MaterialRepo) Search(ctx context.Context, q repository.MaterialQuery) ([]repository.MaterialWithBatches, int, error) {
	const where = `
		WHERE ($1 = ''
		       OR m.name ILIKE '%' || $1 || '%'
		       OR b.name ILIKE '%' || $1 || '%'
		       OR t.name ILIKE '%' || $1 || '%'
		       OR EXISTS (
		            SELECT 1 FROM batches bt
		            JOIN vendors v ON v.id = bt.vendor_id
		            WHERE bt.material_id = m.id AND v.name ILIKE '%' || $1 || '%'))
		  AND ($2 = '' OR m.brand_id::text = $2)
		  AND ($3 = '' OR m.material_type_id::text = $3)`

	countQuery := `
		SELECT COUNT(*)
		FROM materials m
		JOIN brands b ON b.id = m.brand_id
		JOIN material_types t ON t.id = m.material_type_id` + where

	var total int
	if err := r.q.QueryRow(ctx, countQuery, q.Search, q.BrandID, q.MaterialTypeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}

	listQuery := `
		SELECT m.id, m.name, m.size, m.brand_id, m.material_type_id, m.created_at, m.updated_at,
		       b.name, t.name
		FROM materials m
		JOIN brands b ON b.id = m.brand_id
		JOIN material_types t ON t.id = m.material_type_id` + where + `
		ORDER BY m.name ASC, m.id ASC`

	rows, err := r.q.Query(ctx, listQuery, q.Search, q.BrandID, q.MaterialTypeID)
	if err != nil {
		return nil, 0, fmt.Errorf("search materials: %w", err)
	}
	defer rows.Close()

	var results []repository.MaterialWithBatches
	var ids []string
	for rows.Next() {
		var row repository.MaterialWithBatches
		if err := rows.Scan(
			&row.Material.ID, &row.Material.Name, &row.Material.Size,
			&row.Material.BrandID, &row.Material.MaterialTypeID,
			&row.Material.CreatedAt, &row.Material.UpdatedAt,
			&row.BrandName, &row.MaterialTypeName,
		); err != nil {
			return nil, 0, fmt.Errorf("search materials scan: %w", err)
		}
		row.Batches = []repository.BatchWithVendor{}
		results = append(results, row)
		ids = append(ids, row.Material.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return results, total, nil
	}

	batchesByMaterial, err := r.batchesForMaterials(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range results {
		if bs, ok := batchesByMaterial[results[i].Material.ID]; ok {
			results[i].Batches = bs
		}
	}
	return results, total, nil
}

// batchesForMaterials carga los lotes (con nombre de proveedor) de un conjunto
// de materiales en una sola consulta.
func (r *MaterialRepo) batchesForMaterials(ctx context.Context, materialIDs []string) (map[string][]repository.BatchWithVendor, error) {
	query := `
		SELECT bt.id, bt.material_id, bt.vendor_id, bt.document_id, bt.purchase_type,
		       bt.quantity, bt.initial_quantity, bt.lot_number, bt.expiration_date,
		       bt.storage_location, bt.stock_added_date, bt.unit_cost, bt.added_by,
		       bt.created_at, bt.updated_at, v.name
		FROM batches bt
		JOIN vendors v ON v.id = bt.vendor_id
		WHERE bt.material_id::text = ANY($1)
		ORDER BY bt.expiration_date ASC, bt.id ASC`
	rows, err := r.q.Query(ctx, query, materialIDs)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]repository.BatchWithVendor, len(materialIDs))
	for rows.Next() {
		var b repository.BatchWithVendor
		if err := rows.Scan(
			&b.ID, &b.MaterialID, &b.VendorID, &b.DocumentID, &b.PurchaseType,
			&b.Quantity, &b.InitialQuantity, &b.LotNumber, &b.ExpirationDate,
			&b.StorageLocation, &b.StockAddedDate, &b.UnitCost, &b.AddedBy,
			&b.CreatedAt, &b.UpdatedAt, &b.VendorName,
		); err != nil {
			return nil, fmt.Errorf("load batches scan: %w", err)
		}
		out[b.MaterialID] = append(out[b.MaterialID], b)
	}
	return out, rows.Err()
}
