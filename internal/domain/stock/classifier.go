package stock

import (
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// Status clasificación derivada de disponibilidad de un material.
type Status string

const (
	StatusInStock      Status = "in stock"
	StatusLowStock     Status = "low stock"
	StatusOutOfStock   Status = "out of stock"
	StatusExpiringSoon Status = "expiring soon"
)

// ValidStatus indica si s es un estado de stock reconocido (para facetas).
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusExpiringSoon:
		return true
	}
	return false
}

// Config umbrales de clasificación. No se derivan de los datos.
type Config struct {
	LowStockThreshold int // total < umbral => stock bajo
	ExpiryWindowDays  int // vence dentro de N días => por vencer
}

// DefaultConfig valores operativos por defecto.
func DefaultConfig() Config {
	return Config{LowStockThreshold: 5, ExpiryWindowDays: 30}
}

// Summary estado derivado de un material a partir de su conjunto de lotes.
// Status es el bucket por cantidad (out/low/in); ExpiringSoon es ortogonal:
// un material puede estar "in stock" y "expiring soon" a la vez.
type Summary struct {
	TotalQuantity int
	Status        Status
	ExpiringSoon  bool
}

// TotalQuantity suma las unidades restantes de todos los lotes.
func TotalQuantity(batches []entity.Batch) int {
	total := 0
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}

// Classify deriva el estado de stock de un material desde sus lotes (función pura).
// Reglas:
//   - out of stock: total == 0
//   - low stock:    0 < total < LowStockThreshold
//   - in stock:     total > 0
//   - expiring soon: existe un lote con cantidad > 0 que vence en <= ExpiryWindowDays
func Classify(batches []entity.Batch, cfg Config, now time.Time) Summary {
	total := TotalQuantity(batches)

	status := StatusInStock
	switch {
	case total == 0:
		status = StatusOutOfStock
	case total < cfg.LowStockThreshold:
		status = StatusLowStock
	}

	cutoff := now.AddDate(0, 0, cfg.ExpiryWindowDays)
	expiring := false
	for _, b := range batches {
		if b.Quantity > 0 && !b.ExpirationDate.After(cutoff) {
			expiring = true
			break
		}
	}

	return Summary{TotalQuantity: total, Status: status, ExpiringSoon: expiring}
}

// Matches evalúa si el resumen satisface la faceta de estado pedida.
// "in stock" acepta también materiales en "low stock" (total > 0).
func (s Summary) Matches(want Status) bool {
	switch want {
	case StatusOutOfStock:
		return s.TotalQuantity == 0
	case StatusLowStock:
		return s.Status == StatusLowStock
	case StatusInStock:
		return s.TotalQuantity > 0
	case StatusExpiringSoon:
		return s.ExpiringSoon
	}
	return false
}
