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

var _ repository.UsageRecordRepository = (*UsageRecordRepo)(nil)

// UsageRecordRepo implementación del puerto UsageRecordRepository sobre PostgreSQL.
type UsageRecordRepo struct {
	q Querier
}

func NewUsageRecordRepository(q Querier) *UsageRecordRepo {
	return &UsageRecordRepo{q: q}
}

func (r *UsageRecordRepo) Create(ctx context.Context, u *entity.UsageRecord) error {
	query := `
		INSERT INTO usage_records (id, batch_id, patient_id, procedure_name, procedure_date,
		                           quantity, physician, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.BatchID, u.PatientID, u.ProcedureName, u.ProcedureDate,
		u.Quantity, u.Physician, u.CreatedBy, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usage record: %w", err)
	}
	return nil
}

func (r *UsageRecordRepo) GetByID(ctx context.Context, id string) (*entity.UsageRecord, error) {
	query := `
		SELECT id, batch_id, patient_id, procedure_name, procedure_date,
		       quantity, physician, created_by, created_at
		FROM usage_records WHERE id = $1`
	var u entity.UsageRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.BatchID, &u.PatientID, &u.ProcedureName, &u.ProcedureDate,
		&u.Quantity, &u.Physician, &u.CreatedBy, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usage record: %w", err)
	}
	return &u, nil
}

// List filtra por lote, material y rango de fechas del procedimiento.
func (r *UsageRecordRepo) List(ctx context.Context, f repository.UsageFilter, limit, offset int) ([]entity.UsageRecord, int, error) {
	const where = `
		WHERE ($1 = '' OR u.batch_id::text = $1)
		  AND ($2 = '' OR bt.material_id::text = $2)
		  AND ($3::timestamptz IS NULL OR u.procedure_date >= $3)
		  AND ($4::timestamptz IS NULL OR u.procedure_date <= $4)`

	countQuery := `
		SELECT COUNT(*)
		FROM usage_records u
		JOIN batches bt ON bt.id = u.batch_id` + where

	var total int
	if err := r.q.QueryRow(ctx, countQuery, f.BatchID, f.MaterialID, f.DateFrom, f.DateTo).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usage records: %w", err)
	}

	listQuery := `
		SELECT u.id, u.batch_id, u.patient_id, u.procedure_name, u.procedure_date,
		       u.quantity, u.physician, u.created_by, u.created_at
		FROM usage_records u
		JOIN batches bt ON bt.id = u.batch_id` + where + `
		ORDER BY u.procedure_date DESC, u.id ASC
		LIMIT $5 OFFSET $6`

	rows, err := r.q.Query(ctx, listQuery, f.BatchID, f.MaterialID, f.DateFrom, f.DateTo, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list usage records: %w", err)
	}
	defer rows.Close()

	var out []entity.UsageRecord
	for rows.Next() {
		var u entity.UsageRecord
		if err := rows.Scan(
			&u.ID, &u.BatchID, &u.PatientID, &u.ProcedureName, &u.ProcedureDate,
			&u.Quantity, &u.Physician, &u.CreatedBy, &u.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("list usage records scan: %w", err)
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *UsageRecordRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM usage_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usage record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
