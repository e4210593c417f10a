package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/audit"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/guard"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// BatchUseCase CRUD de lotes. La cantidad restante NO se edita aquí:
// solo baja registrando consumos y solo sube al anular un consumo.
type BatchUseCase struct {
	repo         repository.BatchRepository
	materialRepo repository.MaterialRepository
	vendorRepo   repository.VendorRepository
	documentRepo repository.DocumentRepository
	guard        *guard.Guard
	audit        *audit.Logger
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	repo repository.BatchRepository,
	materialRepo repository.MaterialRepository,
	vendorRepo repository.VendorRepository,
	documentRepo repository.DocumentRepository,
	g *guard.Guard,
	a *audit.Logger,
) *BatchUseCase {
	return &BatchUseCase{repo: repo, materialRepo: materialRepo, vendorRepo: vendorRepo, documentRepo: documentRepo, guard: g, audit: a}
}

// Create registra un ingreso de stock. Requiere "Edit Materials".
// InitialQuantity queda fijada a la cantidad ingresada y es inmutable.
func (uc *BatchUseCase) Create(ctx context.Context, actorID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	if in.MaterialID == "" || in.VendorID == "" || in.LotNumber == "" || in.ExpirationDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPurchaseType(in.PurchaseType) {
		return nil, domain.ErrInvalidInput
	}
	if m, err := uc.materialRepo.GetByID(ctx, in.MaterialID); err != nil {
		return nil, err
	} else if m == nil {
		return nil, domain.ErrNotFound
	}
	if v, err := uc.vendorRepo.GetByID(ctx, in.VendorID); err != nil {
		return nil, err
	} else if v == nil {
		return nil, domain.ErrNotFound
	}
	if in.DocumentID != nil {
		if d, err := uc.documentRepo.GetByID(ctx, *in.DocumentID); err != nil {
			return nil, err
		} else if d == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	added := now
	if in.StockAddedDate != nil {
		added = *in.StockAddedDate
	}
	cost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cost = *in.UnitCost
	}

	b := &entity.Batch{
		ID:              uuid.New().String(),
		MaterialID:      in.MaterialID,
		VendorID:        in.VendorID,
		DocumentID:      in.DocumentID,
		PurchaseType:    in.PurchaseType,
		Quantity:        in.Quantity,
		InitialQuantity: in.Quantity,
		LotNumber:       in.LotNumber,
		ExpirationDate:  in.ExpirationDate,
		StorageLocation: in.StorageLocation,
		StockAddedDate:  added,
		UnitCost:        cost,
		AddedBy:         actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "batches", b.ID, nil, b, actor.ID, "lote ingresado: "+b.LotNumber)

	resp := toBatchResponse(*b, "")
	return &resp, nil
}

// Update modifica los campos editables de un lote. Requiere "Edit Materials".
func (uc *BatchUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	old := *b

	if in.VendorID != nil {
		if v, err := uc.vendorRepo.GetByID(ctx, *in.VendorID); err != nil {
			return nil, err
		} else if v == nil {
			return nil, domain.ErrNotFound
		}
		b.VendorID = *in.VendorID
	}
	if in.DocumentID != nil {
		if d, err := uc.documentRepo.GetByID(ctx, *in.DocumentID); err != nil {
			return nil, err
		} else if d == nil {
			return nil, domain.ErrNotFound
		}
		b.DocumentID = in.DocumentID
	}
	if in.PurchaseType != nil {
		if !entity.ValidPurchaseType(*in.PurchaseType) {
			return nil, domain.ErrInvalidInput
		}
		b.PurchaseType = *in.PurchaseType
	}
	if in.LotNumber != nil {
		if *in.LotNumber == "" {
			return nil, domain.ErrInvalidInput
		}
		b.LotNumber = *in.LotNumber
	}
	if in.ExpirationDate != nil {
		b.ExpirationDate = *in.ExpirationDate
	}
	if in.StorageLocation != nil {
		b.StorageLocation = *in.StorageLocation
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		b.UnitCost = *in.UnitCost
	}
	b.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "batches", b.ID, old, b, actor.ID, "lote actualizado: "+b.LotNumber)

	resp := toBatchResponse(*b, "")
	return &resp, nil
}

// Delete elimina un lote sin consumos registrados. Requiere "Edit Materials".
func (uc *BatchUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "batches", id, b, nil, actor.ID, "lote eliminado: "+b.LotNumber)
	return nil
}
