package entity

import "time"

// Entidades de referencia: nombre único, referenciadas por materiales/lotes.
// No se pueden eliminar mientras estén referenciadas.

// Vendor proveedor de insumos.
type Vendor struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Brand marca/fabricante de un material.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MaterialType categoría de material (ej. "Catéteres", "Stents", "Guías").
type MaterialType struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Physician médico que realiza procedimientos.
type Physician struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
}
