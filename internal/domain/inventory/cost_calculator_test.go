package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/suministros-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Entrada de 50 a 3.00 sobre 100 unidades a 2.00:
// (100·2.00 + 50·3.00) / 150 = 350/150 = 2.3333… → 2.33
func TestAverageCost_Ponderacion(t *testing.T) {
	got := inventory.AverageCost(100, dec("2.00"), 50, dec("3.00"))
	assert.True(t, dec("2.33").Equal(got), "esperado 2.33, obtenido %s", got)
}

// Primera entrada con stock cero: el costo es exactamente el precio de entrada,
// sin división de por medio.
func TestAverageCost_PrimeraEntrada(t *testing.T) {
	got := inventory.AverageCost(0, decimal.Zero, 10, dec("5.00"))
	assert.True(t, dec("5.00").Equal(got))
}

// Redondeo mitad hacia arriba en el segundo decimal.
func TestAverageCost_RedondeoMitadArriba(t *testing.T) {
	// (1·1.00 + 1·1.01) / 2 = 1.005 → 1.01
	got := inventory.AverageCost(1, dec("1.00"), 1, dec("1.01"))
	assert.True(t, dec("1.01").Equal(got), "esperado 1.01, obtenido %s", got)
}

// Entrada al mismo costo no mueve el promedio.
func TestAverageCost_MismoCosto(t *testing.T) {
	got := inventory.AverageCost(40, dec("7.50"), 60, dec("7.50"))
	assert.True(t, dec("7.50").Equal(got))
}

// El promedio nunca sale del rango [min(costos), max(costos)].
func TestAverageCost_DentroDelRango(t *testing.T) {
	got := inventory.AverageCost(3, dec("10.00"), 7, dec("2.00"))
	assert.True(t, got.GreaterThanOrEqual(dec("2.00")))
	assert.True(t, got.LessThanOrEqual(dec("10.00")))
	// (3·10 + 7·2) / 10 = 44/10 = 4.40
	assert.True(t, dec("4.40").Equal(got))
}
