package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document representa un documento de compra (factura, remisión) asociable a lotes.
// FileKey es una referencia opaca al objeto en el almacenamiento externo;
// los bytes del archivo no pasan por este sistema.
type Document struct {
	ID             string
	Type           string // factura, remisión, orden de compra
	DocumentNumber string
	Date           time.Time
	VendorName     string
	FileKey        string
	TotalAmount    decimal.Decimal
	CreatedAt      time.Time
}
