package dto

import "time"

// RecordUsageRequest body para POST /api/usage.
type RecordUsageRequest struct {
	BatchID       string    `json:"batch_id"`
	PatientID     string    `json:"patient_id"`
	ProcedureName string    `json:"procedure_name"`
	ProcedureDate time.Time `json:"procedure_date"`
	Quantity      int       `json:"quantity"`
	Physician     string    `json:"physician"`
}

// UsageResponse registro de consumo.
type UsageResponse struct {
	ID            string    `json:"id"`
	BatchID       string    `json:"batch_id"`
	PatientID     string    `json:"patient_id"`
	ProcedureName string    `json:"procedure_name"`
	ProcedureDate time.Time `json:"procedure_date"`
	Quantity      int       `json:"quantity"`
	Physician     string    `json:"physician"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// UsageListResponse respuesta de GET /api/usage.
type UsageListResponse struct {
	Items []UsageResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UsageFacets facetas del listado de consumos.
type UsageFacets struct {
	BatchID    string `query:"batch_id"`
	MaterialID string `query:"material_id"`
	DateFrom   string `query:"date_from"` // YYYY-MM-DD
	DateTo     string `query:"date_to"`   // YYYY-MM-DD
}
