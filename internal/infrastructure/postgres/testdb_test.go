package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/migrations"
)

// testPool conecta contra la base de prueba, aplica las migraciones y deja
// las tablas vacías. Sin TEST_DATABASE_URL el paquete se omite completo.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten las pruebas contra PostgreSQL")
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.Up(sqlDB, "."))
	require.NoError(t, sqlDB.Close())

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		TRUNCATE data_logs, usage_records, batches, materials, documents,
		         physicians, vendors, material_types, brands,
		         user_permissions, permissions, users CASCADE`)
	require.NoError(t, err)
	return pool
}
