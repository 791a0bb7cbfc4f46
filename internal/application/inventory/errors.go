package inventory

import (
	"errors"
	"fmt"

	"github.com/tu-usuario/stock-engine/internal/domain"
)

// domainErrors sentinelas que atraviesan la capa de aplicación tal cual.
var domainErrors = []error{
	domain.ErrNotFound,
	domain.ErrInvalidInput,
	domain.ErrInvalidQuantity,
	domain.ErrDuplicate,
	domain.ErrForbidden,
	domain.ErrInsufficientStock,
	domain.ErrLotOverdraw,
	domain.ErrInvariantViolation,
	domain.ErrStoreUnavailable,
}

// classifyError deja pasar los errores de dominio y envuelve cualquier otra
// falla (conexión, timeout de sentencia) como ErrStoreUnavailable: la
// transacción no dejó estado parcial, así que el caller puede reintentar.
func classifyError(err error) error {
	for _, derr := range domainErrors {
		if errors.Is(err, derr) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
