package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/batches.
// La cantidad inicial queda fijada a Quantity y es inmutable después.
type CreateBatchRequest struct {
	MaterialID      string           `json:"material_id"`
	VendorID        string           `json:"vendor_id"`
	DocumentID      *string          `json:"document_id,omitempty"`
	PurchaseType    string           `json:"purchase_type"`
	Quantity        int              `json:"quantity"`
	LotNumber       string           `json:"lot_number"`
	ExpirationDate  time.Time        `json:"expiration_date"`
	StorageLocation string           `json:"storage_location"`
	StockAddedDate  *time.Time       `json:"stock_added_date,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
}

// UpdateBatchRequest body para PUT /api/batches/:id.
// Quantity e InitialQuantity no son editables: la cantidad solo cambia vía consumos.
type UpdateBatchRequest struct {
	VendorID        *string          `json:"vendor_id,omitempty"`
	DocumentID      *string          `json:"document_id,omitempty"`
	PurchaseType    *string          `json:"purchase_type,omitempty"`
	LotNumber       *string          `json:"lot_number,omitempty"`
	ExpirationDate  *time.Time       `json:"expiration_date,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
}
