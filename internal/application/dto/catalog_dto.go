package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NamedRequest body para crear/actualizar entidades de referencia con solo nombre.
type NamedRequest struct {
	Name string `json:"name"`
}

// NamedResponse entidad de referencia en respuestas.
type NamedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PhysicianRequest body para crear/actualizar médicos.
type PhysicianRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// PhysicianResponse médico en respuestas.
type PhysicianResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDocumentRequest body para POST /api/documents.
// FileKey es la referencia opaca que entrega el almacenamiento de objetos;
// los bytes nunca pasan por esta API.
type CreateDocumentRequest struct {
	Type           string           `json:"type"`
	DocumentNumber string           `json:"document_number"`
	Date           time.Time        `json:"date"`
	VendorName     string           `json:"vendor_name"`
	FileKey        string           `json:"file_key"`
	TotalAmount    *decimal.Decimal `json:"total_amount,omitempty"`
}

// DocumentResponse documento en respuestas.
type DocumentResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	DocumentNumber string          `json:"document_number"`
	Date           time.Time       `json:"date"`
	VendorName     string          `json:"vendor_name"`
	FileKey        string          `json:"file_key"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DocumentListResponse respuesta de GET /api/documents.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
