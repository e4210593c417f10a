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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, type, document_number, date, vendor_name, file_key, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Type, d.DocumentNumber, d.Date, d.VendorName, d.FileKey, d.TotalAmount, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `
		SELECT id, type, document_number, date, vendor_name, file_key, total_amount, created_at
		FROM documents WHERE id = $1`
	var d entity.Document
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Type, &d.DocumentNumber, &d.Date, &d.VendorName, &d.FileKey, &d.TotalAmount, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]entity.Document, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `
		SELECT id, type, document_number, date, vendor_name, file_key, total_amount, created_at
		FROM documents
		ORDER BY date DESC, id ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.Type, &d.DocumentNumber, &d.Date, &d.VendorName, &d.FileKey, &d.TotalAmount, &d.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("list documents scan: %w", err)
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
