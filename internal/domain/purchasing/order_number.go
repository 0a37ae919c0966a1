package purchasing

import (
	"fmt"
	"time"
)

// Prefijos de número de orden: PO para órdenes normales, RST para reposición.
const (
	OrderPrefixPurchase = "PO"
	OrderPrefixRestock  = "RST"
)

// FormatOrderNumber construye el número de orden (servicio de dominio).
// Formato: {PREFIX}-{YYYYMMDD}-{HHMMSS}-{RRR} con RRR aleatorio en [100, 999].
func FormatOrderNumber(prefix string, t time.Time, random int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, t.Format("20060102-150405"), random)
}

// FallbackOrderNumber construye el número de orden de último recurso cuando los
// intentos aleatorios colisionan: sufijo de microsegundos truncado a milisegundos.
func FallbackOrderNumber(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, t.Format("20060102-150405"), t.Nanosecond()/1e6)
}
