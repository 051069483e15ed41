package inventory

import (
	"context"
	"time"
)

// RetryPolicy reintenta un callback transaccional ante errores transitorios de
// infraestructura (conflicto de serialización, deadlock, conexión caída).
// Los errores de negocio (ErrInsufficientStock, ErrAlreadyReversed, ...) jamás
// pasan el predicado Retryable y se reportan de inmediato.
type RetryPolicy struct {
	MaxAttempts int                  // intentos totales (1 + reintentos)
	Backoff     time.Duration        // espera entre intentos
	Retryable   func(err error) bool // predicado de errores transitorios
}

// DefaultRetryPolicy hasta 2 reintentos con backoff corto.
func DefaultRetryPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 100 * time.Millisecond, Retryable: retryable}
}

// Do ejecuta fn hasta MaxAttempts veces. Devuelve el último error si ninguno
// de los intentos tuvo éxito o el primero no reintentable.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff):
		}
	}
	return err
}
