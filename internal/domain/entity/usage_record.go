package entity

import "time"

// UsageRecord registra el consumo de unidades de un lote en un procedimiento.
// Su creación descuenta atómicamente Quantity del lote referenciado.
// Un mismo procedimiento genera varios registros (uno por material consumido);
// para contar procedimientos se deduplica por (PatientID, ProcedureName, día de ProcedureDate).
type UsageRecord struct {
	ID            string
	BatchID       string
	PatientID     string
	ProcedureName string
	ProcedureDate time.Time
	Quantity      int // unidades consumidas
	Physician     string
	CreatedBy     string
	CreatedAt     time.Time
}
