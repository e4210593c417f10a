package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/stock"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func batches(qtys ...int) []entity.Batch {
	out := make([]entity.Batch, 0, len(qtys))
	for _, q := range qtys {
		out = append(out, entity.Batch{Quantity: q, ExpirationDate: now.AddDate(1, 0, 0)})
	}
	return out
}

func TestClassify_EnStock(t *testing.T) {
	// {3, 0, 2} => total 5: en stock, no bajo (5 no es < 5)
	s := stock.Classify(batches(3, 0, 2), stock.DefaultConfig(), now)
	assert.Equal(t, 5, s.TotalQuantity)
	assert.Equal(t, stock.StatusInStock, s.Status)
	assert.False(t, s.ExpiringSoon)
}

func TestClassify_StockBajo(t *testing.T) {
	// {1, 2} => total 3 < 5: stock bajo
	s := stock.Classify(batches(1, 2), stock.DefaultConfig(), now)
	assert.Equal(t, 3, s.TotalQuantity)
	assert.Equal(t, stock.StatusLowStock, s.Status)
}

func TestClassify_Agotado(t *testing.T) {
	s := stock.Classify(batches(0, 0), stock.DefaultConfig(), now)
	assert.Equal(t, 0, s.TotalQuantity)
	assert.Equal(t, stock.StatusOutOfStock, s.Status)

	// Sin lotes también cuenta como agotado
	s = stock.Classify(nil, stock.DefaultConfig(), now)
	assert.Equal(t, stock.StatusOutOfStock, s.Status)
}

func TestClassify_PorVencer(t *testing.T) {
	// Lote con cantidad > 0 que vence en 10 días => por vencer,
	// y sigue siendo "in stock" a la vez (buckets ortogonales).
	bs := []entity.Batch{{Quantity: 2, ExpirationDate: now.AddDate(0, 0, 10)}}
	s := stock.Classify(bs, stock.DefaultConfig(), now)
	assert.True(t, s.ExpiringSoon)
	assert.Equal(t, stock.StatusLowStock, s.Status)
	assert.True(t, s.Matches(stock.StatusInStock))

	// Mismo vencimiento pero cantidad 0: no aparece como por vencer
	bs[0].Quantity = 0
	s = stock.Classify(bs, stock.DefaultConfig(), now)
	assert.False(t, s.ExpiringSoon)
}

func TestClassify_LimiteVentana(t *testing.T) {
	cfg := stock.DefaultConfig()
	// Exactamente en el límite de 30 días cuenta como por vencer
	bs := []entity.Batch{{Quantity: 1, ExpirationDate: now.AddDate(0, 0, cfg.ExpiryWindowDays)}}
	assert.True(t, stock.Classify(bs, cfg, now).ExpiringSoon)
	// Un día después del límite ya no
	bs[0].ExpirationDate = now.AddDate(0, 0, cfg.ExpiryWindowDays+1)
	assert.False(t, stock.Classify(bs, cfg, now).ExpiringSoon)
}

func TestClassify_Idempotente(t *testing.T) {
	// Clasificar dos veces sin mutar los lotes da el mismo resultado
	bs := batches(1, 4, 0)
	first := stock.Classify(bs, stock.DefaultConfig(), now)
	second := stock.Classify(bs, stock.DefaultConfig(), now)
	assert.Equal(t, first, second)
}

func TestMatches_Facetas(t *testing.T) {
	low := stock.Classify(batches(2), stock.DefaultConfig(), now)
	assert.True(t, low.Matches(stock.StatusLowStock))
	assert.True(t, low.Matches(stock.StatusInStock)) // bajo implica disponible
	assert.False(t, low.Matches(stock.StatusOutOfStock))

	out := stock.Classify(nil, stock.DefaultConfig(), now)
	assert.True(t, out.Matches(stock.StatusOutOfStock))
	assert.False(t, out.Matches(stock.StatusInStock))
}
