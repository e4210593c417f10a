package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

func newUsageUC(batches *fakeBatchRepo, logs *fakeDataLogRepo) (*usecase.UsageUseCase, *fakeUsageRepo) {
	usageRepo := newFakeUsageRepo()
	tx := &fakeTxRunner{batches: batches, usage: usageRepo}
	g := newTestGuard(
		activeUser(editorID, entity.PermEditMaterials),
		activeUser(lectorID),
	)
	return usecase.NewUsageUseCase(tx, usageRepo, g, newTestAudit(logs)), usageRepo
}

func testBatch(id string, qty, initial int) *entity.Batch {
	return &entity.Batch{
		ID:              id,
		MaterialID:      "m1",
		VendorID:        "v1",
		PurchaseType:    entity.PurchaseTypePurchased,
		Quantity:        qty,
		InitialQuantity: initial,
		ExpirationDate:  time.Now().AddDate(1, 0, 0),
	}
}

func usageReq(batchID string, qty int) dto.RecordUsageRequest {
	return dto.RecordUsageRequest{
		BatchID:       batchID,
		PatientID:     "P-001",
		ProcedureName: "Angioplastia",
		ProcedureDate: time.Now(),
		Quantity:      qty,
	}
}

func TestRecordUsage_CantidadInvalida(t *testing.T) {
	uc, _ := newUsageUC(newFakeBatchRepo(testBatch("b1", 5, 5)), &fakeDataLogRepo{})

	for _, qty := range []int{0, -3} {
		_, err := uc.RecordUsage(context.Background(), editorID, usageReq("b1", qty))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestRecordUsage_SinPermiso(t *testing.T) {
	batches := newFakeBatchRepo(testBatch("b1", 5, 5))
	uc, usageRepo := newUsageUC(batches, &fakeDataLogRepo{})

	_, err := uc.RecordUsage(context.Background(), lectorID, usageReq("b1", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 5, batches.quantity("b1"), "el stock no debe tocarse")
	assert.Zero(t, usageRepo.count())
}

func TestRecordUsage_Descuenta(t *testing.T) {
	batches := newFakeBatchRepo(testBatch("b1", 5, 5))
	logs := &fakeDataLogRepo{}
	uc, usageRepo := newUsageUC(batches, logs)

	out, err := uc.RecordUsage(context.Background(), editorID, usageReq("b1", 2))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Quantity)
	assert.Equal(t, editorID, out.CreatedBy)
	assert.Equal(t, 3, batches.quantity("b1"))
	assert.Equal(t, 1, usageRepo.count())

	entries := logs.all()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionCreate, entries[0].Action)
	assert.Equal(t, "usage_records", entries[0].TableName)
}

func TestRecordUsage_StockInsuficiente(t *testing.T) {
	batches := newFakeBatchRepo(testBatch("b1", 1, 5))
	uc, usageRepo := newUsageUC(batches, &fakeDataLogRepo{})

	_, err := uc.RecordUsage(context.Background(), editorID, usageReq("b1", 2))
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.Equal(t, 1, batches.quantity("b1"), "el stock queda intacto")
	assert.Zero(t, usageRepo.count())
}

func TestRecordUsage_LoteInexistente(t *testing.T) {
	uc, _ := newUsageUC(newFakeBatchRepo(), &fakeDataLogRepo{})
	_, err := uc.RecordUsage(context.Background(), editorID, usageReq("no-existe", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos consumos concurrentes de 3 unidades contra un lote de 5: el decremento
// condicional garantiza que exactamente uno pasa y el stock nunca queda negativo.
func TestRecordUsage_ConcurrenciaNoSobregira(t *testing.T) {
	batches := newFakeBatchRepo(testBatch("b1", 5, 5))
	uc, usageRepo := newUsageUC(batches, &fakeDataLogRepo{})

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordUsage(context.Background(), editorID, usageReq("b1", 3))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, failCount int
	for err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
			failCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un consumo debe pasar")
	assert.Equal(t, 1, failCount)
	assert.Equal(t, 2, batches.quantity("b1"), "5 - 3 = 2, nunca negativo")
	assert.Equal(t, 1, usageRepo.count())
}

func TestUsageDelete_RestauraStock(t *testing.T) {
	batches := newFakeBatchRepo(testBatch("b1", 5, 5))
	logs := &fakeDataLogRepo{}
	uc, usageRepo := newUsageUC(batches, logs)

	out, err := uc.RecordUsage(context.Background(), editorID, usageReq("b1", 2))
	require.NoError(t, err)
	require.Equal(t, 3, batches.quantity("b1"))

	require.NoError(t, uc.Delete(context.Background(), editorID, out.ID))
	assert.Equal(t, 5, batches.quantity("b1"), "las unidades vuelven al lote")
	assert.Zero(t, usageRepo.count())

	entries := logs.all()
	require.Len(t, entries, 2)
	assert.Equal(t, entity.ActionDelete, entries[1].Action)
	assert.Nil(t, entries[1].NewValues, "DELETE no lleva snapshot posterior")
}

func TestUsageDelete_RestauracionExcedeInicial(t *testing.T) {
	// El lote ya está lleno: restaurar un consumo registrado contra otro estado
	// superaría initial_quantity y debe rechazarse.
	batches := newFakeBatchRepo(testBatch("b1", 5, 5))
	uc, usageRepo := newUsageUC(batches, &fakeDataLogRepo{})

	rec := &entity.UsageRecord{ID: "u1", BatchID: "b1", PatientID: "P-001", ProcedureName: "X", Quantity: 2}
	require.NoError(t, usageRepo.Create(context.Background(), rec))

	err := uc.Delete(context.Background(), editorID, "u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, batches.quantity("b1"))
}

func TestUsageDelete_Inexistente(t *testing.T) {
	uc, _ := newUsageUC(newFakeBatchRepo(), &fakeDataLogRepo{})
	err := uc.Delete(context.Background(), editorID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
