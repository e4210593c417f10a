package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

// Límites de los listados del dashboard.
const (
	dashboardRecentActivity = 10
	dashboardListCap        = 10
	dashboardTrendMonths    = 6
	dashboardUsageWindow    = 30 // días hacia atrás para procedimientos y anticipos
)

// DashboardUseCase arma la vista agregada del inventario.
// No ejecuta SQL: consume las consultas con nombre del DashboardRepository.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
	logRepo  repository.DataLogRepository
	stockCfg stock.Config
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashRepo repository.DashboardRepository, logRepo repository.DataLogRepository, stockCfg stock.Config) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo, logRepo: logRepo, stockCfg: stockCfg}
}

// GetDashboard devuelve actividad reciente, alertas, contadores y tendencias.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	expiryCutoff := now.AddDate(0, 0, uc.stockCfg.ExpiryWindowDays)
	usageSince := now.AddDate(0, 0, -dashboardUsageWindow)

	recent, err := uc.logRepo.Recent(ctx, dashboardRecentActivity)
	if err != nil {
		return nil, err
	}

	lowStock, err := uc.dashRepo.LowStockSummary(ctx, uc.stockCfg.LowStockThreshold, dashboardListCap)
	if err != nil {
		return nil, err
	}

	expiring, err := uc.dashRepo.ExpiringSoonSummary(ctx, expiryCutoff, dashboardListCap)
	if err != nil {
		return nil, err
	}

	counters, err := uc.dashRepo.SummaryCounters(ctx, uc.stockCfg.LowStockThreshold, expiryCutoff, usageSince)
	if err != nil {
		return nil, err
	}

	byCategory, err := uc.dashRepo.InventoryByCategory(ctx)
	if err != nil {
		return nil, err
	}

	trend, err := uc.dashRepo.MonthlyUsageTrend(ctx, dashboardTrendMonths)
	if err != nil {
		return nil, err
	}

	advance, err := uc.dashRepo.AdvanceMaterialsUsed(ctx, usageSince, dashboardListCap)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		RecentActivity:       make([]dto.ActivityDTO, 0, len(recent)),
		LowStockAlerts:       make([]dto.LowStockAlertDTO, 0, len(lowStock)),
		ExpiringSoonAlerts:   make([]dto.ExpiringSoonAlertDTO, 0, len(expiring)),
		InventoryByCategory:  make([]dto.CategoryTotalDTO, 0, len(byCategory)),
		MonthlyUsageTrends:   make([]dto.MonthlyUsageDTO, 0, len(trend)),
		AdvanceMaterialsUsed: make([]dto.AdvanceUsedDTO, 0, len(advance)),
	}
	for _, l := range recent {
		resp.RecentActivity = append(resp.RecentActivity, dto.ActivityDTO{
			ID:          l.ID,
			Action:      l.Action,
			TableName:   l.TableName,
			RecordID:    l.RecordID,
			UserID:      l.UserID,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		})
	}
	for _, r := range lowStock {
		resp.LowStockAlerts = append(resp.LowStockAlerts, dto.LowStockAlertDTO{
			MaterialID:    r.MaterialID,
			MaterialName:  r.MaterialName,
			Size:          r.Size,
			BrandName:     r.BrandName,
			TotalQuantity: r.TotalQuantity,
		})
	}
	for _, r := range expiring {
		resp.ExpiringSoonAlerts = append(resp.ExpiringSoonAlerts, dto.ExpiringSoonAlertDTO{
			BatchID:        r.BatchID,
			MaterialID:     r.MaterialID,
			MaterialName:   r.MaterialName,
			LotNumber:      r.LotNumber,
			Quantity:       r.Quantity,
			ExpirationDate: r.ExpirationDate,
		})
	}
	resp.SummaryStats = dto.SummaryStatsDTO{
		TotalMaterials:    counters.TotalMaterials,
		ActiveBatches:     counters.ActiveBatches,
		TotalVendors:      counters.TotalVendors,
		RecentProcedures:  counters.RecentProcedures,
		TotalDocuments:    counters.TotalDocuments,
		LowStockCount:     counters.LowStockCount,
		ExpiringSoonCount: counters.ExpiringSoonCount,
	}
	for _, r := range byCategory {
		resp.InventoryByCategory = append(resp.InventoryByCategory, dto.CategoryTotalDTO{
			MaterialTypeID:   r.MaterialTypeID,
			MaterialTypeName: r.MaterialTypeName,
			TotalQuantity:    r.TotalQuantity,
		})
	}
	for _, r := range trend {
		resp.MonthlyUsageTrends = append(resp.MonthlyUsageTrends, dto.MonthlyUsageDTO{
			Month:         r.Month.Format("2006-01"),
			UnitsConsumed: r.UnitsConsumed,
		})
	}
	for _, r := range advance {
		resp.AdvanceMaterialsUsed = append(resp.AdvanceMaterialsUsed, dto.AdvanceUsedDTO{
			MaterialID:   r.MaterialID,
			MaterialName: r.MaterialName,
			BrandName:    r.BrandName,
			UnitsUsed:    r.UnitsUsed,
		})
	}
	return resp, nil
}
