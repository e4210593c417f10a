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
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

// MaterialUseCase listado facetado y CRUD de materiales.
// Toda mutación pasa por el guard y deja exactamente una entrada en bitácora.
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	brandRepo repository.BrandRepository
	typeRepo  repository.MaterialTypeRepository
	guard     *guard.Guard
	audit     *audit.Logger
	stockCfg  stock.Config
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	repo repository.MaterialRepository,
	brandRepo repository.BrandRepository,
	typeRepo repository.MaterialTypeRepository,
	g *guard.Guard,
	a *audit.Logger,
	stockCfg stock.Config,
) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, brandRepo: brandRepo, typeRepo: typeRepo, guard: g, audit: a, stockCfg: stockCfg}
}

// List aplica el filtro en dos etapas:
//  1. SQL: search/brand/type. El total de esa etapa es el TotalCount de la respuesta.
//  2. Memoria: vendor/purchaseType/stockStatus refinan sobre los lotes y pueden
//     descartar materiales, sin tocar TotalCount.
//
// El desfase entre lista y TotalCount es deliberado: la UI muestra "X de Y"
// contra la población previa al refinamiento por lote.
func (uc *MaterialUseCase) List(ctx context.Context, f dto.MaterialFacets) (*dto.MaterialListResponse, error) {
	if f.PurchaseType != "" && !entity.ValidPurchaseType(f.PurchaseType) {
		return nil, domain.ErrInvalidInput
	}
	if f.StockStatus != "" && !stock.ValidStatus(f.StockStatus) {
		return nil, domain.ErrInvalidInput
	}

	rows, totalCount, err := uc.repo.Search(ctx, repository.MaterialQuery{
		Search:         f.Search,
		BrandID:        f.BrandID,
		MaterialTypeID: f.MaterialTypeID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	materials := make([]dto.MaterialResponse, 0, len(rows))
	for _, row := range rows {
		batches := refineBatches(row.Batches, f.VendorID, f.PurchaseType)
		// Si hay facetas de lote y no sobrevive ningún lote, el material sale de la lista
		if (f.VendorID != "" || f.PurchaseType != "") && len(batches) == 0 {
			continue
		}
		summary := stock.Classify(plainBatches(batches), uc.stockCfg, now)
		if f.StockStatus != "" && !summary.Matches(stock.Status(f.StockStatus)) {
			continue
		}
		materials = append(materials, toMaterialResponse(row, batches, summary))
	}

	return &dto.MaterialListResponse{Materials: materials, TotalCount: totalCount}, nil
}

// GetByID devuelve el material con lotes y estado derivado.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	row, err := uc.repo.GetWithBatches(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	summary := stock.Classify(plainBatches(row.Batches), uc.stockCfg, time.Now())
	resp := toMaterialResponse(*row, row.Batches, summary)
	return &resp, nil
}

// Create crea un material. Requiere "Edit Materials".
func (uc *MaterialUseCase) Create(ctx context.Context, actorID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.BrandID == "" || in.MaterialTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if brand, err := uc.brandRepo.GetByID(ctx, in.BrandID); err != nil {
		return nil, err
	} else if brand == nil {
		return nil, domain.ErrNotFound
	}
	if mt, err := uc.typeRepo.GetByID(ctx, in.MaterialTypeID); err != nil {
		return nil, err
	} else if mt == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	m := &entity.Material{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Size:           in.Size,
		BrandID:        in.BrandID,
		MaterialTypeID: in.MaterialTypeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionCreate, "materials", m.ID, nil, m, actor.ID, "material creado: "+m.Name)

	return uc.GetByID(ctx, m.ID)
}

// Update modifica un material. Requiere "Edit Materials".
func (uc *MaterialUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	old := *m

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Size != nil {
		m.Size = *in.Size
	}
	if in.BrandID != nil {
		if brand, err := uc.brandRepo.GetByID(ctx, *in.BrandID); err != nil {
			return nil, err
		} else if brand == nil {
			return nil, domain.ErrNotFound
		}
		m.BrandID = *in.BrandID
	}
	if in.MaterialTypeID != nil {
		if mt, err := uc.typeRepo.GetByID(ctx, *in.MaterialTypeID); err != nil {
			return nil, err
		} else if mt == nil {
			return nil, domain.ErrNotFound
		}
		m.MaterialTypeID = *in.MaterialTypeID
	}
	m.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.audit.Append(ctx, entity.ActionUpdate, "materials", m.ID, old, m, actor.ID, "material actualizado: "+m.Name)

	return uc.GetByID(ctx, m.ID)
}

// Delete elimina un material sin lotes. Requiere "Edit Materials".
// Con lotes referenciándolo falla con ErrInUse (política restrictiva).
func (uc *MaterialUseCase) Delete(ctx context.Context, actorID, id string) error {
	actor, err := uc.guard.Require(ctx, actorID, entity.PermEditMaterials)
	if err != nil {
		return err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Append(ctx, entity.ActionDelete, "materials", id, m, nil, actor.ID, "material eliminado: "+m.Name)
	return nil
}

// refineBatches aplica las facetas de lote (segunda etapa del filtro).
func refineBatches(batches []repository.BatchWithVendor, vendorID, purchaseType string) []repository.BatchWithVendor {
	if vendorID == "" && purchaseType == "" {
		return batches
	}
	out := make([]repository.BatchWithVendor, 0, len(batches))
	for _, b := range batches {
		if vendorID != "" && b.VendorID != vendorID {
			continue
		}
		if purchaseType != "" && b.PurchaseType != purchaseType {
			continue
		}
		out = append(out, b)
	}
	return out
}

func plainBatches(in []repository.BatchWithVendor) []entity.Batch {
	out := make([]entity.Batch, 0, len(in))
	for _, b := range in {
		out = append(out, b.Batch)
	}
	return out
}

func toMaterialResponse(row repository.MaterialWithBatches, batches []repository.BatchWithVendor, s stock.Summary) dto.MaterialResponse {
	items := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toBatchResponse(b.Batch, b.VendorName))
	}
	return dto.MaterialResponse{
		ID:               row.Material.ID,
		Name:             row.Material.Name,
		Size:             row.Material.Size,
		BrandID:          row.Material.BrandID,
		BrandName:        row.BrandName,
		MaterialTypeID:   row.Material.MaterialTypeID,
		MaterialTypeName: row.MaterialTypeName,
		TotalQuantity:    s.TotalQuantity,
		StockStatus:      string(s.Status),
		ExpiringSoon:     s.ExpiringSoon,
		Batches:          items,
	}
}

func toBatchResponse(b entity.Batch, vendorName string) dto.BatchResponse {
	return dto.BatchResponse{
		ID:              b.ID,
		MaterialID:      b.MaterialID,
		VendorID:        b.VendorID,
		VendorName:      vendorName,
		DocumentID:      b.DocumentID,
		PurchaseType:    b.PurchaseType,
		Quantity:        b.Quantity,
		InitialQuantity: b.InitialQuantity,
		LotNumber:       b.LotNumber,
		ExpirationDate:  b.ExpirationDate,
		StorageLocation: b.StorageLocation,
		StockAddedDate:  b.StockAddedDate,
		UnitCost:        b.UnitCost,
		AddedBy:         b.AddedBy,
	}
}
