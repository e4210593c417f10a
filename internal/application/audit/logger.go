package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// AppendResult resultado tipado de un intento de escritura en bitácora.
// Los casos de uso lo ignoran (la bitácora nunca aborta la escritura primaria),
// pero los tests pueden asertar sobre la ruta de falla.
type AppendResult struct {
	Err error
}

// Failed indica si la entrada NO quedó registrada.
func (r AppendResult) Failed() bool { return r.Err != nil }

// Logger escribe entradas inmutables en DataLog capturando el antes/después
// de cada mutación. Nunca propaga errores hacia afuera: una falla se reporta
// solo por diagnóstico de proceso (log estructurado + contador Prometheus).
type Logger struct {
	repo     repository.DataLogRepository
	log      *logger.Logger
	failures prometheus.Counter
}

// New construye el audit logger.
func New(repo repository.DataLogRepository, log *logger.Logger, failures prometheus.Counter) *Logger {
	return &Logger{repo: repo, log: log, failures: failures}
}

// Append serializa los snapshots y agrega una entrada a la bitácora.
// oldV/newV se guardan como JSON opaco: el drift de forma de las entidades
// no rompe filas históricas. Pasar nil para omitir (CREATE sin oldV, DELETE sin newV).
func (l *Logger) Append(ctx context.Context, action, tableName, recordID string, oldV, newV any, actorID, description string) AppendResult {
	entry := &entity.DataLog{
		ID:          uuid.New().String(),
		Action:      action,
		TableName:   tableName,
		RecordID:    recordID,
		UserID:      actorID,
		Description: description,
		CreatedAt:   time.Now(),
	}

	var err error
	if entry.OldValues, err = marshalSnapshot(oldV); err == nil {
		if entry.NewValues, err = marshalSnapshot(newV); err == nil {
			err = l.repo.Append(ctx, entry)
		}
	}
	if err != nil {
		// Best-effort: se descarta la entrada y se deja rastro en diagnóstico
		l.failures.Inc()
		l.log.Error().
			Err(err).
			Str("action", action).
			Str("table", tableName).
			Str("record_id", recordID).
			Msg("fallo al escribir bitácora; la mutación primaria ya quedó aplicada")
		return AppendResult{Err: fmt.Errorf("audit append: %w", err)}
	}
	return AppendResult{}
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	return raw, nil
}
