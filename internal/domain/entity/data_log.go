package entity

import (
	"encoding/json"
	"time"
)

// Acciones registrables en la bitácora.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// DataLog entrada inmutable de la bitácora de cambios: una por cada mutación lógica.
// OldValues/NewValues son snapshots JSON opacos (no tipados) para que el cambio
// de forma de las entidades a lo largo del tiempo no rompa filas históricas.
// Solo la escribe el Audit Logger; nunca se actualiza ni se borra.
type DataLog struct {
	ID          string
	Action      string // CREATE | UPDATE | DELETE
	TableName   string
	RecordID    string
	OldValues   json.RawMessage // nil en CREATE
	NewValues   json.RawMessage // nil en DELETE
	UserID      string
	Description string
	CreatedAt   time.Time
}
