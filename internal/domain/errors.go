package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de negocio nunca se reintentan; solo los transitorios de
// infraestructura pasan por la RetryPolicy (application/inventory).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrItemInactive      = errors.New("artículo inactivo")
	ErrAlreadyReversed   = errors.New("la venta ya fue anulada")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidPrice      = errors.New("precio inválido")
	ErrInvalidReason     = errors.New("motivo de anulación requerido")
)
