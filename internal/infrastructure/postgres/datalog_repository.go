package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.DataLogRepository = (*DataLogRepo)(nil)

// DataLogRepo bitácora append-only sobre PostgreSQL. La tabla no recibe
// UPDATE ni DELETE desde la aplicación.
type DataLogRepo struct {
	q Querier
}

func NewDataLogRepository(q Querier) *DataLogRepo {
	return &DataLogRepo{q: q}
}

func (r *DataLogRepo) Append(ctx context.Context, l *entity.DataLog) error {
	query := `
		INSERT INTO data_logs (id, action, table_name, record_id, old_values, new_values,
		                       user_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Action, l.TableName, l.RecordID, l.OldValues, l.NewValues,
		l.UserID, l.Description, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append data log: %w", err)
	}
	return nil
}

func (r *DataLogRepo) List(ctx context.Context, f repository.DataLogFilter, limit, offset int) ([]entity.DataLog, int, error) {
	const where = `
		WHERE ($1 = '' OR table_name = $1)
		  AND ($2 = '' OR action = $2)
		  AND ($3 = '' OR user_id::text = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)`

	var total int
	countQuery := `SELECT COUNT(*) FROM data_logs` + where
	if err := r.q.QueryRow(ctx, countQuery, f.TableName, f.Action, f.UserID, f.DateFrom, f.DateTo).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count data logs: %w", err)
	}

	listQuery := `
		SELECT id, action, table_name, record_id, old_values, new_values,
		       user_id, description, created_at
		FROM data_logs` + where + `
		ORDER BY created_at DESC, id ASC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, listQuery, f.TableName, f.Action, f.UserID, f.DateFrom, f.DateTo, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list data logs: %w", err)
	}
	defer rows.Close()

	var out []entity.DataLog
	for rows.Next() {
		var l entity.DataLog
		if err := rows.Scan(
			&l.ID, &l.Action, &l.TableName, &l.RecordID, &l.OldValues, &l.NewValues,
			&l.UserID, &l.Description, &l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("list data logs scan: %w", err)
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *DataLogRepo) Recent(ctx context.Context, n int) ([]entity.DataLog, error) {
	query := `
		SELECT id, action, table_name, record_id, old_values, new_values,
		       user_id, description, created_at
		FROM data_logs
		ORDER BY created_at DESC, id ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("recent data logs: %w", err)
	}
	defer rows.Close()

	var out []entity.DataLog
	for rows.Next() {
		var l entity.DataLog
		if err := rows.Scan(
			&l.ID, &l.Action, &l.TableName, &l.RecordID, &l.OldValues, &l.NewValues,
			&l.UserID, &l.Description, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("recent data logs scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
