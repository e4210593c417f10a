package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) LowStockSummary(ctx context.Context, threshold, limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT m.id, m.name, m.size, b.name, COALESCE(SUM(bt.quantity), 0) AS total
		FROM materials m
		JOIN brands b ON b.id = m.brand_id
		LEFT JOIN batches bt ON bt.material_id = m.id
		GROUP BY m.id, m.name, m.size, b.name
		HAVING COALESCE(SUM(bt.quantity), 0) > 0 AND COALESCE(SUM(bt.quantity), 0) < $1
		ORDER BY total ASC, m.name ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock summary: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.MaterialID, &row.MaterialName, &row.Size, &row.BrandName, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("low stock summary scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) ExpiringSoonSummary(ctx context.Context, cutoff time.Time, limit int) ([]repository.ExpiringBatchRow, error) {
	query := `
		SELECT bt.id, m.id, m.name, bt.lot_number, bt.quantity, bt.expiration_date
		FROM batches bt
		JOIN materials m ON m.id = bt.material_id
		WHERE bt.quantity > 0 AND bt.expiration_date <= $1
		ORDER BY bt.expiration_date ASC, bt.id ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("expiring soon summary: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpiringBatchRow
	for rows.Next() {
		var row repository.ExpiringBatchRow
		if err := rows.Scan(&row.BatchID, &row.MaterialID, &row.MaterialName, &row.LotNumber, &row.Quantity, &row.ExpirationDate); err != nil {
			return nil, fmt.Errorf("expiring soon summary scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SummaryCounters resuelve todos los contadores en un solo round-trip.
// Los procedimientos recientes se deduplican por paciente, nombre del
// procedimiento y día: un procedimiento consume varios materiales pero
// cuenta una sola vez.
func (r *DashboardRepo) SummaryCounters(ctx context.Context, threshold int, cutoff time.Time, since time.Time) (*repository.SummaryCounters, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM materials),
			(SELECT COUNT(*) FROM batches WHERE quantity > 0),
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM (
				SELECT DISTINCT patient_id, procedure_name, date_trunc('day', procedure_date)
				FROM usage_records WHERE procedure_date >= $3) AS procedures),
			(SELECT COUNT(*) FROM documents),
			(SELECT COUNT(*) FROM (
				SELECT material_id FROM batches
				GROUP BY material_id
				HAVING SUM(quantity) > 0 AND SUM(quantity) < $1) AS low),
			(SELECT COUNT(*) FROM batches WHERE quantity > 0 AND expiration_date <= $2)`
	var c repository.SummaryCounters
	err := r.q.QueryRow(ctx, query, threshold, cutoff, since).Scan(
		&c.TotalMaterials, &c.ActiveBatches, &c.TotalVendors, &c.RecentProcedures,
		&c.TotalDocuments, &c.LowStockCount, &c.ExpiringSoonCount,
	)
	if err != nil {
		return nil, fmt.Errorf("summary counters: %w", err)
	}
	return &c, nil
}

func (r *DashboardRepo) InventoryByCategory(ctx context.Context) ([]repository.CategoryRow, error) {
	query := `
		SELECT t.id, t.name, COALESCE(SUM(bt.quantity), 0)
		FROM material_types t
		LEFT JOIN materials m ON m.material_type_id = t.id
		LEFT JOIN batches bt ON bt.material_id = m.id
		GROUP BY t.id, t.name
		ORDER BY t.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory by category: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryRow
	for rows.Next() {
		var row repository.CategoryRow
		if err := rows.Scan(&row.MaterialTypeID, &row.MaterialTypeName, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("inventory by category scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) MonthlyUsageTrend(ctx context.Context, months int) ([]repository.MonthlyUsageRow, error) {
	query := `
		SELECT date_trunc('month', procedure_date) AS month, COALESCE(SUM(quantity), 0)
		FROM usage_records
		WHERE procedure_date >= date_trunc('month', now()) - make_interval(months => $1 - 1)
		GROUP BY month
		ORDER BY month ASC`
	rows, err := r.q.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("monthly usage trend: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyUsageRow
	for rows.Next() {
		var row repository.MonthlyUsageRow
		if err := rows.Scan(&row.Month, &row.UnitsConsumed); err != nil {
			return nil, fmt.Errorf("monthly usage trend scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) AdvanceMaterialsUsed(ctx context.Context, since time.Time, limit int) ([]repository.AdvanceUsedRow, error) {
	query := `
		SELECT m.id, m.name, b.name, SUM(u.quantity) AS used
		FROM usage_records u
		JOIN batches bt ON bt.id = u.batch_id
		JOIN materials m ON m.id = bt.material_id
		JOIN brands b ON b.id = m.brand_id
		WHERE bt.purchase_type = $1 AND u.procedure_date >= $2
		GROUP BY m.id, m.name, b.name
		ORDER BY used DESC, m.name ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.PurchaseTypeAdvance, since, limit)
	if err != nil {
		return nil, fmt.Errorf("advance materials used: %w", err)
	}
	defer rows.Close()

	var out []repository.AdvanceUsedRow
	for rows.Next() {
		var row repository.AdvanceUsedRow
		if err := rows.Scan(&row.MaterialID, &row.MaterialName, &row.BrandName, &row.UnitsUsed); err != nil {
			return nil, fmt.Errorf("advance materials used scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
