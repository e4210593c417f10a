package dto

import "encoding/json"

// DataLogFacets facetas del listado de bitácora.
// date_from/date_to son días (YYYY-MM-DD) y el rango es inclusivo:
// [date_from 00:00:00, date_to 23:59:59.999...].
type DataLogFacets struct {
	TableName string `query:"table_name"`
	Action    string `query:"action"`
	UserID    string `query:"user_id"`
	DateFrom  string `query:"date_from"`
	DateTo    string `query:"date_to"`
}

// DataLogEntryDTO fila de bitácora en respuestas.
type DataLogEntryDTO struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	TableName   string          `json:"table_name"`
	RecordID    string          `json:"record_id"`
	OldValues   json.RawMessage `json:"old_values,omitempty"`
	NewValues   json.RawMessage `json:"new_values,omitempty"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

// DataLogListResponse respuesta de GET /api/datalog.
type DataLogListResponse struct {
	Logs []DataLogEntryDTO `json:"logs"`
	Page PageResponse      `json:"page"`
}
