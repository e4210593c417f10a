package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

// ReportUseCase genera el reporte de inventario en Excel.
// Es una vista de solo lectura sobre el mismo estado derivado del clasificador.
type ReportUseCase struct {
	materialRepo repository.MaterialRepository
	stockCfg     stock.Config
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(materialRepo repository.MaterialRepository, stockCfg stock.Config) *ReportUseCase {
	return &ReportUseCase{materialRepo: materialRepo, stockCfg: stockCfg}
}

// InventoryXLSX arma el libro con una fila por material: stock total derivado,
// estado y cantidad de lotes activos.
func (uc *ReportUseCase) InventoryXLSX(ctx context.Context) ([]byte, string, error) {
	rows, _, err := uc.materialRepo.Search(ctx, repository.MaterialQuery{})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Material", "Presentación", "Marca", "Categoría",
		"Stock total", "Estado", "Por vencer", "Lotes activos",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("reporte: encabezado: %w", err)
	}

	now := time.Now()
	for i, row := range rows {
		summary := stock.Classify(plainBatches(row.Batches), uc.stockCfg, now)
		active := 0
		for _, b := range row.Batches {
			if b.Quantity > 0 {
				active++
			}
		}
		porVencer := "No"
		if summary.ExpiringSoon {
			porVencer = "Sí"
		}
		excelRow := []interface{}{
			row.Material.Name,
			row.Material.Size,
			row.BrandName,
			row.MaterialTypeName,
			summary.TotalQuantity,
			string(summary.Status),
			porVencer,
			active,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, "", fmt.Errorf("reporte: fila: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("reporte: escribir libro: %w", err)
	}
	name := fmt.Sprintf("inventario_%s.xlsx", now.Format("20060102_150405"))
	return buf.Bytes(), name, nil
}
