package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialFacets facetas del listado de materiales. Todas opcionales.
// search/brand_id/material_type_id se resuelven en SQL; vendor_id,
// purchase_type y stock_status refinan en memoria sobre los lotes
// (y NO afectan el total_count devuelto).
type MaterialFacets struct {
	Search         string `query:"search"`
	BrandID        string `query:"brand_id"`
	MaterialTypeID string `query:"material_type_id"`
	VendorID       string `query:"vendor_id"`
	PurchaseType   string `query:"purchase_type"`
	StockStatus    string `query:"stock_status"`
}

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name           string `json:"name"`
	Size           string `json:"size"`
	BrandID        string `json:"brand_id"`
	MaterialTypeID string `json:"material_type_id"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id (campos opcionales).
type UpdateMaterialRequest struct {
	Name           *string `json:"name,omitempty"`
	Size           *string `json:"size,omitempty"`
	BrandID        *string `json:"brand_id,omitempty"`
	MaterialTypeID *string `json:"material_type_id,omitempty"`
}

// BatchResponse lote dentro de una respuesta de material.
type BatchResponse struct {
	ID              string          `json:"id"`
	MaterialID      string          `json:"material_id"`
	VendorID        string          `json:"vendor_id"`
	VendorName      string          `json:"vendor_name,omitempty"`
	DocumentID      *string         `json:"document_id,omitempty"`
	PurchaseType    string          `json:"purchase_type"`
	Quantity        int             `json:"quantity"`
	InitialQuantity int             `json:"initial_quantity"`
	LotNumber       string          `json:"lot_number"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	StorageLocation string          `json:"storage_location"`
	StockAddedDate  time.Time       `json:"stock_added_date"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	AddedBy         string          `json:"added_by"`
}

// MaterialResponse material con su estado de stock derivado y sus lotes.
type MaterialResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Size             string          `json:"size"`
	BrandID          string          `json:"brand_id"`
	BrandName        string          `json:"brand_name,omitempty"`
	MaterialTypeID   string          `json:"material_type_id"`
	MaterialTypeName string          `json:"material_type_name,omitempty"`
	TotalQuantity    int             `json:"total_quantity"`
	StockStatus      string          `json:"stock_status"`
	ExpiringSoon     bool            `json:"expiring_soon"`
	Batches          []BatchResponse `json:"batches"`
}

// MaterialListResponse respuesta de GET /api/materials.
// TotalCount refleja solo las facetas de la primera etapa (search/brand/type):
// soporta el "X de Y" de la UI aunque la lista venga refinada por lote.
type MaterialListResponse struct {
	Materials  []MaterialResponse `json:"materials"`
	TotalCount int                `json:"total_count"`
}
