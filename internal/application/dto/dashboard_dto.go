package dto

import "time"

// ActivityDTO entrada reciente de bitácora para el dashboard.
type ActivityDTO struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	TableName   string    `json:"table_name"`
	RecordID    string    `json:"record_id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LowStockAlertDTO material con stock bajo.
type LowStockAlertDTO struct {
	MaterialID    string `json:"material_id"`
	MaterialName  string `json:"material_name"`
	Size          string `json:"size"`
	BrandName     string `json:"brand_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// ExpiringSoonAlertDTO lote por vencer con unidades disponibles.
type ExpiringSoonAlertDTO struct {
	BatchID        string    `json:"batch_id"`
	MaterialID     string    `json:"material_id"`
	MaterialName   string    `json:"material_name"`
	LotNumber      string    `json:"lot_number"`
	Quantity       int       `json:"quantity"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// SummaryStatsDTO contadores generales del dashboard.
type SummaryStatsDTO struct {
	TotalMaterials    int `json:"total_materials"`
	ActiveBatches     int `json:"active_batches"`
	TotalVendors      int `json:"total_vendors"`
	RecentProcedures  int `json:"recent_procedures"`
	TotalDocuments    int `json:"total_documents"`
	LowStockCount     int `json:"low_stock_count"`
	ExpiringSoonCount int `json:"expiring_soon_count"`
}

// CategoryTotalDTO unidades por categoría de material.
type CategoryTotalDTO struct {
	MaterialTypeID   string `json:"material_type_id"`
	MaterialTypeName string `json:"material_type_name"`
	TotalQuantity    int    `json:"total_quantity"`
}

// MonthlyUsageDTO consumo de un mes calendario.
type MonthlyUsageDTO struct {
	Month         string `json:"month"` // YYYY-MM
	UnitsConsumed int    `json:"units_consumed"`
}

// AdvanceUsedDTO material en anticipo consumido recientemente.
type AdvanceUsedDTO struct {
	MaterialID   string `json:"material_id"`
	MaterialName string `json:"material_name"`
	BrandName    string `json:"brand_name"`
	UnitsUsed    int    `json:"units_used"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	RecentActivity       []ActivityDTO          `json:"recent_activity"`
	LowStockAlerts       []LowStockAlertDTO     `json:"low_stock_alerts"`
	ExpiringSoonAlerts   []ExpiringSoonAlertDTO `json:"expiring_soon_alerts"`
	SummaryStats         SummaryStatsDTO        `json:"summary_stats"`
	InventoryByCategory  []CategoryTotalDTO     `json:"inventory_by_category"`
	MonthlyUsageTrends   []MonthlyUsageDTO      `json:"monthly_usage_trends"`
	AdvanceMaterialsUsed []AdvanceUsedDTO       `json:"advance_materials_used"`
}
