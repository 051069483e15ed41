package ledger

import (
	"crypto/rand"
	"fmt"
	"time"
)

// NewSaleNumber genera un número de venta corto y legible: PREFIJO-AAAAMMDD-XXXX
// con 4 hex aleatorios. No es único por construcción: el procesador de ventas
// verifica colisión contra la base dentro de la transacción y regenera.
func NewSaleNumber(prefix string, now time.Time) string {
	var b [2]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s-%s-%02X%02X", prefix, now.Format("20060102"), b[0], b[1])
}
