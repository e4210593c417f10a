package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

// fakeDashboardRepo devuelve filas enlatadas y guarda los argumentos con los
// que fue consultado, para asertar que el caso de uso deriva bien
// umbrales y ventanas desde la configuración.
type fakeDashboardRepo struct {
	lowThreshold   int
	lowLimit       int
	expiringCutoff time.Time
	countersThresh int
	countersCutoff time.Time
	countersSince  time.Time
	trendMonths    int
	advanceSince   time.Time

	low      []repository.LowStockRow
	expiring []repository.ExpiringBatchRow
	counters repository.SummaryCounters
	byCat    []repository.CategoryRow
	trend    []repository.MonthlyUsageRow
	advance  []repository.AdvanceUsedRow
}

func (f *fakeDashboardRepo) LowStockSummary(_ context.Context, threshold, limit int) ([]repository.LowStockRow, error) {
	f.lowThreshold, f.lowLimit = threshold, limit
	return f.low, nil
}

func (f *fakeDashboardRepo) ExpiringSoonSummary(_ context.Context, cutoff time.Time, _ int) ([]repository.ExpiringBatchRow, error) {
	f.expiringCutoff = cutoff
	return f.expiring, nil
}

func (f *fakeDashboardRepo) SummaryCounters(_ context.Context, threshold int, cutoff, since time.Time) (*repository.SummaryCounters, error) {
	f.countersThresh, f.countersCutoff, f.countersSince = threshold, cutoff, since
	c := f.counters
	return &c, nil
}

func (f *fakeDashboardRepo) InventoryByCategory(_ context.Context) ([]repository.CategoryRow, error) {
	return f.byCat, nil
}

func (f *fakeDashboardRepo) MonthlyUsageTrend(_ context.Context, months int) ([]repository.MonthlyUsageRow, error) {
	f.trendMonths = months
	return f.trend, nil
}

func (f *fakeDashboardRepo) AdvanceMaterialsUsed(_ context.Context, since time.Time, _ int) ([]repository.AdvanceUsedRow, error) {
	f.advanceSince = since
	return f.advance, nil
}

func TestDashboard_MapeaSecciones(t *testing.T) {
	dashRepo := &fakeDashboardRepo{
		low: []repository.LowStockRow{
			{MaterialID: "m1", MaterialName: "Catéter 7F", Size: "7F", BrandName: "Medtronic", TotalQuantity: 2},
		},
		expiring: []repository.ExpiringBatchRow{
			{BatchID: "b1", MaterialID: "m1", MaterialName: "Catéter 7F", LotNumber: "L-42", Quantity: 3,
				ExpirationDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)},
		},
		counters: repository.SummaryCounters{
			TotalMaterials: 4, ActiveBatches: 6, TotalVendors: 2,
			RecentProcedures: 5, TotalDocuments: 3, LowStockCount: 1, ExpiringSoonCount: 1,
		},
		byCat: []repository.CategoryRow{
			{MaterialTypeID: "t1", MaterialTypeName: "Catéteres", TotalQuantity: 12},
		},
		trend: []repository.MonthlyUsageRow{
			{Month: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), UnitsConsumed: 9},
			{Month: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), UnitsConsumed: 14},
		},
		advance: []repository.AdvanceUsedRow{
			{MaterialID: "m2", MaterialName: "Stent", BrandName: "Abbott", UnitsUsed: 4},
		},
	}
	logRepo := &fakeDataLogRepo{}
	logRepo.entries = []entity.DataLog{{
		ID: "l1", Action: entity.ActionCreate, TableName: "batches", RecordID: "b1",
		UserID: editorID, Description: "lote ingresado", CreatedAt: time.Now(),
	}}
	uc := usecase.NewDashboardUseCase(dashRepo, logRepo, stock.DefaultConfig())

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, out.RecentActivity, 1)
	assert.Equal(t, entity.ActionCreate, out.RecentActivity[0].Action)

	require.Len(t, out.LowStockAlerts, 1)
	assert.Equal(t, "Catéter 7F", out.LowStockAlerts[0].MaterialName)
	assert.Equal(t, 2, out.LowStockAlerts[0].TotalQuantity)

	require.Len(t, out.ExpiringSoonAlerts, 1)
	assert.Equal(t, "L-42", out.ExpiringSoonAlerts[0].LotNumber)

	// Los contadores pasan tal cual: los procedimientos ya llegan deduplicados
	assert.Equal(t, 5, out.SummaryStats.RecentProcedures)
	assert.Equal(t, 4, out.SummaryStats.TotalMaterials)
	assert.Equal(t, 1, out.SummaryStats.LowStockCount)

	require.Len(t, out.InventoryByCategory, 1)
	assert.Equal(t, 12, out.InventoryByCategory[0].TotalQuantity)

	require.Len(t, out.MonthlyUsageTrends, 2)
	assert.Equal(t, "2026-02", out.MonthlyUsageTrends[0].Month)
	assert.Equal(t, "2026-03", out.MonthlyUsageTrends[1].Month)

	require.Len(t, out.AdvanceMaterialsUsed, 1)
	assert.Equal(t, "Stent", out.AdvanceMaterialsUsed[0].MaterialName)
}

func TestDashboard_DerivaParametrosDeConfig(t *testing.T) {
	dashRepo := &fakeDashboardRepo{}
	uc := usecase.NewDashboardUseCase(dashRepo, &fakeDataLogRepo{}, stock.Config{
		LowStockThreshold: 4,
		ExpiryWindowDays:  15,
	})

	_, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, 4, dashRepo.lowThreshold)
	assert.Equal(t, 4, dashRepo.countersThresh, "mismo umbral para lista y contador")
	assert.WithinDuration(t, now.AddDate(0, 0, 15), dashRepo.expiringCutoff, time.Minute)
	assert.WithinDuration(t, dashRepo.expiringCutoff, dashRepo.countersCutoff, time.Second,
		"mismo corte de vencimiento para lista y contador")
	assert.WithinDuration(t, now.AddDate(0, 0, -30), dashRepo.countersSince, time.Minute)
	assert.WithinDuration(t, dashRepo.countersSince, dashRepo.advanceSince, time.Second)
	assert.Equal(t, 6, dashRepo.trendMonths)
	assert.Equal(t, 10, dashRepo.lowLimit)
}
