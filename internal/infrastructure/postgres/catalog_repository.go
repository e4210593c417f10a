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

// Los cuatro catálogos de referencia comparten la misma forma (id, name[, extra]);
// vendors, brands y material_types reutilizan un repo genérico por tabla y
// physicians lleva el suyo por la columna specialty.

var (
	_ repository.VendorRepository       = (*VendorRepo)(nil)
	_ repository.BrandRepository        = (*BrandRepo)(nil)
	_ repository.MaterialTypeRepository = (*MaterialTypeRepo)(nil)
	_ repository.PhysicianRepository    = (*PhysicianRepo)(nil)
)

type namedRepo struct {
	q     Querier
	table string
}

func (r *namedRepo) create(ctx context.Context, id, name string, createdAt any) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, $3)`, r.table)
	if _, err := r.q.Exec(ctx, query, id, name, createdAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
	return nil
}

func (r *namedRepo) getByID(ctx context.Context, id string, dest ...any) error {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.table)
	return r.q.QueryRow(ctx, query, id).Scan(dest...)
}

func (r *namedRepo) update(ctx context.Context, id, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *namedRepo) delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *namedRepo) listRows(ctx context.Context) (pgx.Rows, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name ASC`, r.table)
	return r.q.Query(ctx, query)
}

// VendorRepo proveedores.
type VendorRepo struct{ namedRepo }

func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{namedRepo{q: q, table: "vendors"}}
}

func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	return r.create(ctx, v.ID, v.Name, v.CreatedAt)
}

func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var v entity.Vendor
	if err := r.getByID(ctx, id, &v.ID, &v.Name, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

func (r *VendorRepo) List(ctx context.Context) ([]entity.Vendor, error) {
	rows, err := r.listRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var out []entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	return r.update(ctx, v.ID, v.Name)
}

func (r *VendorRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

// BrandRepo marcas.
type BrandRepo struct{ namedRepo }

func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{namedRepo{q: q, table: "brands"}}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	return r.create(ctx, b.ID, b.Name, b.CreatedAt)
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	var b entity.Brand
	if err := r.getByID(ctx, id, &b.ID, &b.Name, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context) ([]entity.Brand, error) {
	rows, err := r.listRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var out []entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	return r.update(ctx, b.ID, b.Name)
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

// MaterialTypeRepo categorías de material.
type MaterialTypeRepo struct{ namedRepo }

func NewMaterialTypeRepository(q Querier) *MaterialTypeRepo {
	return &MaterialTypeRepo{namedRepo{q: q, table: "material_types"}}
}

func (r *MaterialTypeRepo) Create(ctx context.Context, t *entity.MaterialType) error {
	return r.create(ctx, t.ID, t.Name, t.CreatedAt)
}

func (r *MaterialTypeRepo) GetByID(ctx context.Context, id string) (*entity.MaterialType, error) {
	var t entity.MaterialType
	if err := r.getByID(ctx, id, &t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material type: %w", err)
	}
	return &t, nil
}

func (r *MaterialTypeRepo) List(ctx context.Context) ([]entity.MaterialType, error) {
	rows, err := r.listRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list material types: %w", err)
	}
	defer rows.Close()
	var out []entity.MaterialType
	for rows.Next() {
		var t entity.MaterialType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *MaterialTypeRepo) Update(ctx context.Context, t *entity.MaterialType) error {
	return r.update(ctx, t.ID, t.Name)
}

func (r *MaterialTypeRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

// PhysicianRepo médicos.
type PhysicianRepo struct {
	q Querier
}

func NewPhysicianRepository(q Querier) *PhysicianRepo {
	return &PhysicianRepo{q: q}
}

func (r *PhysicianRepo) Create(ctx context.Context, p *entity.Physician) error {
	query := `INSERT INTO physicians (id, name, specialty, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Specialty, p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert physician: %w", err)
	}
	return nil
}

func (r *PhysicianRepo) GetByID(ctx context.Context, id string) (*entity.Physician, error) {
	query := `SELECT id, name, specialty, created_at FROM physicians WHERE id = $1`
	var p entity.Physician
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Specialty, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get physician: %w", err)
	}
	return &p, nil
}

func (r *PhysicianRepo) List(ctx context.Context) ([]entity.Physician, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, specialty, created_at FROM physicians ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list physicians: %w", err)
	}
	defer rows.Close()
	var out []entity.Physician
	for rows.Next() {
		var p entity.Physician
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PhysicianRepo) Update(ctx context.Context, p *entity.Physician) error {
	query := `UPDATE physicians SET name = $2, specialty = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Specialty)
	if err != nil {
		return fmt.Errorf("update physician: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PhysicianRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM physicians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete physician: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
