package entity

import "time"

// Material representa un insumo médico consumible (ej. catéter, gasa, stent).
// El stock NO se guarda aquí: se deriva siempre de sus lotes (Batch).
type Material struct {
	ID             string
	Name           string
	Size           string // presentación/tamaño: "7F", "0.014", "M", etc.
	BrandID        string
	MaterialTypeID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
