package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de compra de un lote.
const (
	PurchaseTypePurchased = "Purchased" // compra directa
	PurchaseTypeAdvance   = "Advance"   // anticipo del proveedor (consignación)
)

// ValidPurchaseType indica si s es un tipo de compra reconocido.
func ValidPurchaseType(s string) bool {
	return s == PurchaseTypePurchased || s == PurchaseTypeAdvance
}

// Batch representa un lote comprado de un material, con su propia cantidad,
// vencimiento y procedencia. Invariante: 0 <= Quantity <= InitialQuantity.
// Quantity solo baja vía registros de uso (UsageRecord), nunca por edición directa.
type Batch struct {
	ID              string
	MaterialID      string
	VendorID        string
	DocumentID      *string // documento de compra opcional
	PurchaseType    string  // Purchased | Advance
	Quantity        int     // unidades restantes
	InitialQuantity int     // unidades al ingreso; inmutable
	LotNumber       string
	ExpirationDate  time.Time
	StorageLocation string
	StockAddedDate  time.Time
	UnitCost        decimal.Decimal
	AddedBy         string // usuario que registró el ingreso; inmutable
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
