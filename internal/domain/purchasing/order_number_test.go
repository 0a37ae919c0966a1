package purchasing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/pos-backoffice/internal/domain/purchasing"
)

// Vector de referencia: el formato {PREFIX}-{YYYYMMDD}-{HHMMSS}-{RRR} es parte
// del contrato con los sistemas que consumen los números de orden; cualquier
// cambio de formato debe romper este test.
func TestFormatOrderNumber_VectorExacto(t *testing.T) {
	ts := time.Date(2026, time.August, 30, 14, 7, 9, 0, time.UTC)

	assert.Equal(t, "PO-20260830-140709-457", purchasing.FormatOrderNumber(purchasing.OrderPrefixPurchase, ts, 457))
	assert.Equal(t, "RST-20260830-140709-100", purchasing.FormatOrderNumber(purchasing.OrderPrefixRestock, ts, 100))
}

func TestFallbackOrderNumber_SufijoDeMilisegundos(t *testing.T) {
	ts := time.Date(2026, time.August, 30, 14, 7, 9, 345_678_901, time.UTC)

	assert.Equal(t, "PO-20260830-140709-345", purchasing.FallbackOrderNumber(purchasing.OrderPrefixPurchase, ts))
}

// El sufijo de milisegundos se rellena a tres dígitos para conservar el ancho
// del formato aun en los primeros milisegundos del segundo.
func TestFallbackOrderNumber_RellenaACeroIzquierda(t *testing.T) {
	ts := time.Date(2026, time.August, 30, 14, 7, 9, 7_000_000, time.UTC)

	assert.Equal(t, "PO-20260830-140709-007", purchasing.FallbackOrderNumber(purchasing.OrderPrefixPurchase, ts))
}
