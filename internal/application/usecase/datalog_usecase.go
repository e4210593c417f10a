package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// DataLogUseCase consulta de la bitácora. Solo lectura: las entradas las
// escribe el audit logger y jamás se modifican.
type DataLogUseCase struct {
	repo repository.DataLogRepository
}

// NewDataLogUseCase construye el caso de uso.
func NewDataLogUseCase(repo repository.DataLogRepository) *DataLogUseCase {
	return &DataLogUseCase{repo: repo}
}

// List lista la bitácora con facetas y paginación, descendente por timestamp.
// Las fechas (YYYY-MM-DD) forman un rango inclusivo de días completos.
func (uc *DataLogUseCase) List(ctx context.Context, f dto.DataLogFacets, page dto.PageRequest) (*dto.DataLogListResponse, error) {
	page.DefaultPage()

	if f.Action != "" {
		switch f.Action {
		case entity.ActionCreate, entity.ActionUpdate, entity.ActionDelete:
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	filter := repository.DataLogFilter{TableName: f.TableName, Action: f.Action, UserID: f.UserID}
	var err error
	if filter.DateFrom, filter.DateTo, err = parseDayRange(f.DateFrom, f.DateTo); err != nil {
		return nil, err
	}

	logs, total, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DataLogEntryDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toDataLogDTO(l))
	}
	return &dto.DataLogListResponse{
		Logs: out,
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toDataLogDTO(l entity.DataLog) dto.DataLogEntryDTO {
	return dto.DataLogEntryDTO{
		ID:          l.ID,
		Action:      l.Action,
		TableName:   l.TableName,
		RecordID:    l.RecordID,
		OldValues:   l.OldValues,
		NewValues:   l.NewValues,
		UserID:      l.UserID,
		Description: l.Description,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}
