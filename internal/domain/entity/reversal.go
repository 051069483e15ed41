package entity

import "time"

// Reversal registra la anulación completa de una venta. No tiene campo de
// cantidad: siempre devuelve el KgSold íntegro de la venta (no hay anulación
// parcial). SaleID es único: a lo sumo una anulación por venta, y esa
// restricción en la base es el árbitro final ante concurrencia.
type Reversal struct {
	ID         string
	SaleID     string
	ReversedBy string
	Reason     string // obligatorio, no vacío
	CreatedAt  time.Time
}
