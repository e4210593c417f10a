package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// UsageUseCase registra y anula consumos de lotes en procedimientos.
// El descuento del lote es un UPDATE condicional dentro de la transacción:
// dos consumos concurrentes contra el mismo lote nunca pueden pasar ambos la
// validación de disponibilidad sobre una lectura obsoleta.
type UsageUseCase struct {
	txRunner  TxRunner
	usageRepo repository.UsageRecordRepository
	guard     *guard.Guard
	audit     *audit.Logger
}

// NewUsageUseCase construye el caso de uso.
func NewUsageUseCase(txRunner TxRunner, usageRepo repository.UsageRecordRepository, g *guard.Guard, a *audit.Logger) *UsageUseCase {
	return &UsageUseCase{txRunner: txRunner, usageRepo: usageRepo, guard: g, audit: a}
}

// RecordUsage descuenta unidades de un lote y registra el consumo, atómicamente.
// Requiere "Edit Materials". Falla con ErrInsufficientQuantity si el lote no
// tiene las unidades pedidas al momento del UPDATE condicional.
func (uc *UsageUseCase) RecordUsage(ctx context.Context, actorID string, in dto.RecordUsageRequest) (*dto.UsageResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if in.BatchID == "" || strings.TrimSpace(in.PatientID) == "" || strings.TrimSpace(in.ProcedureName) == "" {
		return nil, domain.ErrInvalidInput
	}
	procDate := in.ProcedureDate
	if procDate.IsZero() {
		procDate = time.Now()
	}

	rec := &entity.UsageRecord{
		ID:            uuid.New().String(),
		BatchID:       in.BatchID,
		PatientID:     strings.TrimSpace(in.PatientID),
		ProcedureName: strings.TrimSpace(in.ProcedureName),
		ProcedureDate: procDate,
		Quantity:      in.Quantity,
		Physician:     in.Physician,
		CreatedBy:     actor.ID,
		CreatedAt:     time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, usageRepo repository.UsageRecordRepository) error {
		ok, err := batchRepo.DecrementQuantity(ctx, in.BatchID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// El UPDATE no aplicó: o el lote no existe, o no alcanza la cantidad
			b, err := batchRepo.GetByID(ctx, in.BatchID)
			if err != nil {
				return err
			}
			if b == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientQuantity
		}
		return usageRepo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Append(ctx, entity.ActionCreate, "usage_records", rec.ID, nil, rec, actor.ID,
		"consumo registrado: "+rec.ProcedureName)

	resp := toUsageResponse(*rec)
	return &resp, nil
}

// Delete anula un consumo mal registrado y devuelve las unidades al lote,
// sin superar nunca initial_quantity. Requiere "Edit Materials".
func (uc *UsageUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return err
	}

	var deleted *entity.UsageRecord
	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, usageRepo repository.UsageRecordRepository) error {
		rec, err := usageRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		ok, err := batchRepo.RestoreQuantity(ctx, rec.BatchID, rec.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// Restaurar superaría initial_quantity: estado inconsistente con este consumo
			return domain.ErrConflict
		}
		if err := usageRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = rec
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Append(ctx, entity.ActionDelete, "usage_records", id, deleted, nil, actor.ID,
		"consumo anulado: "+deleted.ProcedureName)
	return nil
}

// List lista consumos con facetas opcionales.
func (uc *UsageUseCase) List(ctx context.Context, f dto.UsageFacets, page dto.PageRequest) (*dto.UsageListResponse, error) {
	page.DefaultPage()

	filter := repository.UsageFilter{BatchID: f.BatchID, MaterialID: f.MaterialID}
	var err error
	if filter.DateFrom, filter.DateTo, err = parseDayRange(f.DateFrom, f.DateTo); err != nil {
		return nil, err
	}

	items, total, err := uc.usageRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsageResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toUsageResponse(it))
	}
	return &dto.UsageListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toUsageResponse(u entity.UsageRecord) dto.UsageResponse {
	return dto.UsageResponse{
		ID:            u.ID,
		BatchID:       u.BatchID,
		PatientID:     u.PatientID,
		ProcedureName: u.ProcedureName,
		ProcedureDate: u.ProcedureDate,
		Quantity:      u.Quantity,
		Physician:     u.Physician,
		CreatedBy:     u.CreatedBy,
		CreatedAt:     u.CreatedAt,
	}
}

// parseDayRange interpreta fechas YYYY-MM-DD como rango inclusivo de días:
// [from 00:00:00, to 23:59:59.999999999]. Un rango invertido es inválido.
func parseDayRange(from, to string) (*time.Time, *time.Time, error) {
	var fromT, toT *time.Time
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		toT = &end
	}
	if fromT != nil && toT != nil && fromT.After(*toT) {
		return nil, nil, domain.ErrInvalidInput
	}
	return fromT, toT, nil
}
