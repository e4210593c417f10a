package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/infrastructure/postgres"
)

// inventoryFixture ids de un fixture mínimo: un material con un lote activo.
type inventoryFixture struct {
	userID     string
	brandID    string
	typeID     string
	vendorID   string
	materialID string
	batchID    string
}

func seedInventory(t *testing.T, pool *pgxpool.Pool) inventoryFixture {
	t.Helper()
	ctx := context.Background()
	f := inventoryFixture{
		userID:     uuid.NewString(),
		brandID:    uuid.NewString(),
		typeID:     uuid.NewString(),
		vendorID:   uuid.NewString(),
		materialID: uuid.NewString(),
		batchID:    uuid.NewString(),
	}
	mustExec := func(sql string, args ...any) {
		_, err := pool.Exec(ctx, sql, args...)
		require.NoError(t, err)
	}
	mustExec(`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, '', 'Test')`,
		f.userID, f.userID+"@clinic.test")
	mustExec(`INSERT INTO brands (id, name) VALUES ($1, 'Medtronic')`, f.brandID)
	mustExec(`INSERT INTO material_types (id, name) VALUES ($1, 'Catéteres')`, f.typeID)
	mustExec(`INSERT INTO vendors (id, name) VALUES ($1, 'Distribuidora Norte')`, f.vendorID)
	mustExec(`INSERT INTO materials (id, name, brand_id, material_type_id) VALUES ($1, 'Catéter 7F', $2, $3)`,
		f.materialID, f.brandID, f.typeID)
	mustExec(`
		INSERT INTO batches (id, material_id, vendor_id, purchase_type, quantity, initial_quantity,
		                     expiration_date, stock_added_date, added_by)
		VALUES ($1, $2, $3, 'Purchased', 10, 10, $4, now(), $5)`,
		f.batchID, f.materialID, f.vendorID, time.Now().AddDate(1, 0, 0), f.userID)
	return f
}

func insertUsage(t *testing.T, pool *pgxpool.Pool, f inventoryFixture, patient, procedure string, at time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO usage_records (id, batch_id, patient_id, procedure_name, procedure_date, quantity, created_by)
		VALUES ($1, $2, $3, $4, $5, 1, $6)`,
		uuid.NewString(), f.batchID, patient, procedure, at, f.userID)
	require.NoError(t, err)
}

// Varios consumos del mismo procedimiento (misma paciente, mismo nombre,
// mismo día) cuentan como un solo procedimiento en los contadores.
func TestDashboardRepo_SummaryCounters_DeduplicaProcedimientos(t *testing.T) {
	pool := testPool(t)
	f := seedInventory(t, pool)
	repo := postgres.NewDashboardRepository(pool)
	ctx := context.Background()

	// Mediodía de ayer: los tres consumos caen en el mismo día calendario
	y := time.Now().AddDate(0, 0, -1)
	day := time.Date(y.Year(), y.Month(), y.Day(), 12, 0, 0, 0, time.Local)
	insertUsage(t, pool, f, "P-001", "Angioplastia", day)
	insertUsage(t, pool, f, "P-001", "Angioplastia", day.Add(30*time.Minute))
	insertUsage(t, pool, f, "P-001", "Angioplastia", day.Add(90*time.Minute))
	// Mismo procedimiento dos días antes: cuenta aparte
	insertUsage(t, pool, f, "P-001", "Angioplastia", day.AddDate(0, 0, -2))
	// Otra paciente el mismo día: cuenta aparte
	insertUsage(t, pool, f, "P-002", "Angioplastia", day)

	now := time.Now()
	c, err := repo.SummaryCounters(ctx, 5, now.AddDate(0, 0, 30), now.AddDate(0, 0, -30))
	require.NoError(t, err)

	assert.Equal(t, 3, c.RecentProcedures, "mismo (paciente, procedimiento, día) cuenta una vez")
	assert.Equal(t, 1, c.TotalMaterials)
	assert.Equal(t, 1, c.ActiveBatches)
	assert.Equal(t, 1, c.TotalVendors)
	assert.Equal(t, 0, c.LowStockCount, "10 unidades no es stock bajo con umbral 5")
	assert.Equal(t, 0, c.ExpiringSoonCount, "vence en un año")
}

func TestDashboardRepo_SummaryCounters_VentanaDeFecha(t *testing.T) {
	pool := testPool(t)
	f := seedInventory(t, pool)
	repo := postgres.NewDashboardRepository(pool)

	// Un procedimiento fuera de la ventana y uno dentro
	insertUsage(t, pool, f, "P-001", "Angioplastia", time.Now().AddDate(0, 0, -45))
	insertUsage(t, pool, f, "P-001", "Angioplastia", time.Now().AddDate(0, 0, -3))

	now := time.Now()
	c, err := repo.SummaryCounters(context.Background(), 5, now.AddDate(0, 0, 30), now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 1, c.RecentProcedures, "solo cuenta lo ocurrido desde `since`")
}
