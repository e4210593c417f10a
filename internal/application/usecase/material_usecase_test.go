package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

const (
	editorID = "00000000-0000-0000-0000-0000000000e1"
	lectorID = "00000000-0000-0000-0000-0000000000e2"
	brandID  = "00000000-0000-0000-0000-0000000000b1"
	typeID   = "00000000-0000-0000-0000-0000000000t1"
)

func newMaterialUC(repo *fakeMaterialRepo, logs *fakeDataLogRepo) *usecase.MaterialUseCase {
	brands := &fakeBrandRepo{brands: map[string]*entity.Brand{brandID: {ID: brandID, Name: "Medtron"}}}
	types := &fakeTypeRepo{types: map[string]*entity.MaterialType{typeID: {ID: typeID, Name: "Catéteres"}}}
	g := newTestGuard(
		activeUser(editorID, entity.PermEditMaterials),
		activeUser(lectorID), // sin permisos
	)
	return usecase.NewMaterialUseCase(repo, brands, types, g, newTestAudit(logs), stock.DefaultConfig())
}

func batchRow(materialID, vendorID, purchaseType string, qty int) repository.BatchWithVendor {
	return repository.BatchWithVendor{
		Batch: entity.Batch{
			ID:             materialID + "-b-" + vendorID,
			MaterialID:     materialID,
			VendorID:       vendorID,
			PurchaseType:   purchaseType,
			Quantity:       qty,
			ExpirationDate: time.Now().AddDate(1, 0, 0),
		},
		VendorName: "Proveedor " + vendorID,
	}
}

// Las facetas de lote refinan la lista en memoria pero TotalCount sigue
// reflejando la población de la etapa SQL.
func TestMaterialList_FacetasDeLoteNoTocanTotalCount(t *testing.T) {
	repo := newFakeMaterialRepo()
	repo.rows = []repository.MaterialWithBatches{
		{
			Material: entity.Material{ID: "m1", Name: "Catéter A", BrandID: brandID, MaterialTypeID: typeID},
			Batches:  []repository.BatchWithVendor{batchRow("m1", "v1", entity.PurchaseTypePurchased, 10)},
		},
		{
			Material: entity.Material{ID: "m2", Name: "Catéter B", BrandID: brandID, MaterialTypeID: typeID},
			Batches:  []repository.BatchWithVendor{batchRow("m2", "v2", entity.PurchaseTypeAdvance, 4)},
		},
	}
	repo.total = 2
	uc := newMaterialUC(repo, &fakeDataLogRepo{})

	out, err := uc.List(context.Background(), dto.MaterialFacets{VendorID: "v1"})
	require.NoError(t, err)

	require.Len(t, out.Materials, 1, "solo m1 tiene lotes del proveedor v1")
	assert.Equal(t, "m1", out.Materials[0].ID)
	assert.Equal(t, 2, out.TotalCount, "el total no cambia con facetas de lote")
}

func TestMaterialList_FacetaStockStatus(t *testing.T) {
	repo := newFakeMaterialRepo()
	repo.rows = []repository.MaterialWithBatches{
		{
			Material: entity.Material{ID: "m1", Name: "Stent bajo", BrandID: brandID, MaterialTypeID: typeID},
			Batches:  []repository.BatchWithVendor{batchRow("m1", "v1", entity.PurchaseTypePurchased, 3)},
		},
		{
			Material: entity.Material{ID: "m2", Name: "Stent abundante", BrandID: brandID, MaterialTypeID: typeID},
			Batches:  []repository.BatchWithVendor{batchRow("m2", "v1", entity.PurchaseTypePurchased, 20)},
		},
	}
	repo.total = 2
	uc := newMaterialUC(repo, &fakeDataLogRepo{})

	out, err := uc.List(context.Background(), dto.MaterialFacets{StockStatus: string(stock.StatusLowStock)})
	require.NoError(t, err)
	require.Len(t, out.Materials, 1)
	assert.Equal(t, "m1", out.Materials[0].ID)
}

func TestMaterialList_StockStatusInvalido(t *testing.T) {
	uc := newMaterialUC(newFakeMaterialRepo(), &fakeDataLogRepo{})
	_, err := uc.List(context.Background(), dto.MaterialFacets{StockStatus: "agotadísimo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Sin el permiso "Edit Materials" la mutación no llega al store ni a la bitácora.
func TestMaterialCreate_SinPermisoNoEscribeNada(t *testing.T) {
	repo := newFakeMaterialRepo()
	logs := &fakeDataLogRepo{}
	uc := newMaterialUC(repo, logs)

	_, err := uc.Create(context.Background(), lectorID, dto.CreateMaterialRequest{
		Name: "Guía 0.035", BrandID: brandID, MaterialTypeID: typeID,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, repo.count(), "el material no debe persistirse")
	assert.Empty(t, logs.all(), "no debe quedar rastro en bitácora")
}

func TestMaterialCreate_SinIdentidad(t *testing.T) {
	uc := newMaterialUC(newFakeMaterialRepo(), &fakeDataLogRepo{})
	_, err := uc.Create(context.Background(), "", dto.CreateMaterialRequest{
		Name: "Guía 0.035", BrandID: brandID, MaterialTypeID: typeID,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMaterialCreate_DejaUnaEntradaEnBitacora(t *testing.T) {
	repo := newFakeMaterialRepo()
	logs := &fakeDataLogRepo{}
	uc := newMaterialUC(repo, logs)

	out, err := uc.Create(context.Background(), editorID, dto.CreateMaterialRequest{
		Name: "  Guía 0.035  ", Size: "180cm", BrandID: brandID, MaterialTypeID: typeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Guía 0.035", out.Name, "el nombre llega recortado")

	entries := logs.all()
	require.Len(t, entries, 1, "exactamente una entrada por mutación")
	e := entries[0]
	assert.Equal(t, entity.ActionCreate, e.Action)
	assert.Equal(t, "materials", e.TableName)
	assert.Equal(t, out.ID, e.RecordID)
	assert.Equal(t, editorID, e.UserID)
	assert.Nil(t, e.OldValues, "CREATE no lleva snapshot previo")

	var snapshot entity.Material
	require.NoError(t, json.Unmarshal(e.NewValues, &snapshot))
	assert.Equal(t, "Guía 0.035", snapshot.Name)
}

func TestMaterialCreate_MarcaInexistente(t *testing.T) {
	uc := newMaterialUC(newFakeMaterialRepo(), &fakeDataLogRepo{})
	_, err := uc.Create(context.Background(), editorID, dto.CreateMaterialRequest{
		Name: "Guía", BrandID: "no-existe", MaterialTypeID: typeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialDelete_ConLotesFalla(t *testing.T) {
	repo := newFakeMaterialRepo()
	repo.materials["m1"] = &entity.Material{ID: "m1", Name: "Stent"}
	repo.deleteErr = domain.ErrInUse
	logs := &fakeDataLogRepo{}
	uc := newMaterialUC(repo, logs)

	err := uc.Delete(context.Background(), editorID, "m1")
	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.Empty(t, logs.all(), "una eliminación fallida no se registra")
}

func TestMaterialUpdate_RegistraAntesYDespues(t *testing.T) {
	repo := newFakeMaterialRepo()
	repo.materials["m1"] = &entity.Material{ID: "m1", Name: "Stent viejo", BrandID: brandID, MaterialTypeID: typeID}
	logs := &fakeDataLogRepo{}
	uc := newMaterialUC(repo, logs)

	nuevo := "Stent nuevo"
	_, err := uc.Update(context.Background(), editorID, "m1", dto.UpdateMaterialRequest{Name: &nuevo})
	require.NoError(t, err)

	entries := logs.all()
	require.Len(t, entries, 1)
	var oldSnap, newSnap entity.Material
	require.NoError(t, json.Unmarshal(entries[0].OldValues, &oldSnap))
	require.NoError(t, json.Unmarshal(entries[0].NewValues, &newSnap))
	assert.Equal(t, "Stent viejo", oldSnap.Name)
	assert.Equal(t, "Stent nuevo", newSnap.Name)
}
