package repository

import (
	"context"
	"time"
)

// LowStockRow material con stock bajo (0 < total < umbral).
type LowStockRow struct {
	MaterialID    string
	MaterialName  string
	Size          string
	BrandName     string
	TotalQuantity int
}

// ExpiringBatchRow lote con unidades que vence dentro de la ventana.
type ExpiringBatchRow struct {
	BatchID        string
	MaterialID     string
	MaterialName   string
	LotNumber      string
	Quantity       int
	ExpirationDate time.Time
}

// SummaryCounters contadores del dashboard.
type SummaryCounters struct {
	TotalMaterials     int
	ActiveBatches      int // lotes con quantity > 0
	TotalVendors       int
	RecentProcedures   int // procedimientos distintos en la ventana (deduplicados)
	TotalDocuments     int
	LowStockCount      int
	ExpiringSoonCount  int
}

// CategoryRow total de unidades por categoría de material.
type CategoryRow struct {
	MaterialTypeID   string
	MaterialTypeName string
	TotalQuantity    int
}

// MonthlyUsageRow unidades consumidas en un mes calendario.
type MonthlyUsageRow struct {
	Month         time.Time // primer día del mes
	UnitsConsumed int
}

// AdvanceUsedRow material en anticipo consumido recientemente.
type AdvanceUsedRow struct {
	MaterialID   string
	MaterialName string
	BrandName    string
	UnitsUsed    int
}

// DashboardRepository consultas agregadas de solo lectura, con nombre.
// El motor llama esta interfaz y nunca arma SQL crudo: la implementación
// concreta (PostgreSQL u otra) es intercambiable.
type DashboardRepository interface {
	// LowStockSummary materiales con 0 < total < threshold, ascendente por cantidad.
	LowStockSummary(ctx context.Context, threshold, limit int) ([]LowStockRow, error)
	// ExpiringSoonSummary lotes con quantity > 0 que vencen hasta cutoff, ascendente por vencimiento.
	ExpiringSoonSummary(ctx context.Context, cutoff time.Time, limit int) ([]ExpiringBatchRow, error)
	// SummaryCounters contadores generales. Los procedimientos se deduplican por
	// (patient_id, procedure_name, día de procedure_date) desde `since`.
	SummaryCounters(ctx context.Context, threshold int, cutoff time.Time, since time.Time) (*SummaryCounters, error)
	// InventoryByCategory unidades totales por categoría de material.
	InventoryByCategory(ctx context.Context) ([]CategoryRow, error)
	// MonthlyUsageTrend consumo mensual de los últimos `months` meses, ascendente.
	MonthlyUsageTrend(ctx context.Context, months int) ([]MonthlyUsageRow, error)
	// AdvanceMaterialsUsed materiales de lotes en anticipo consumidos desde `since`,
	// descendente por unidades consumidas.
	AdvanceMaterialsUsed(ctx context.Context, since time.Time, limit int) ([]AdvanceUsedRow, error)
}
