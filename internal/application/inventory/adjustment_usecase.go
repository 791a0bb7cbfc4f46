package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
	"github.com/tu-usuario/stock-engine/pkg/logger"
)

// AdjustStockUseCase aplica operaciones que mutan stock (in/out/adjustment,
// traslados, reservas, despacho de órdenes) como una unidad atómica: bloqueo
// de fila por variante (SELECT FOR UPDATE), append al ledger y actualización
// write-through de los contadores, todo en la misma transacción.
type AdjustStockUseCase struct {
	txRunner         TxRunner
	variantRepo      repository.VariantRepository
	cache            AvailabilityCache // puede ser nil
	log              *logger.Logger
	defaultThreshold decimal.Decimal
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	cache AvailabilityCache,
	log *logger.Logger,
	defaultLowStockThreshold int,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:         txRunner,
		variantRepo:      variantRepo,
		cache:            cache,
		log:              log,
		defaultThreshold: decimal.NewFromInt(int64(defaultLowStockThreshold)),
	}
}

// AdjustInput entrada para un ajuste simple (in/out/adjustment).
type AdjustInput struct {
	OrganizationID string
	UserID         string
	VariantID      string
	Type           string
	Quantity       decimal.Decimal
	Reason         string
	Reference      string
	LotNumber      string
}

// AdjustResult movimiento confirmado más la disponibilidad resultante.
type AdjustResult struct {
	Movement     *entity.StockMovement
	Availability inventory.Availability
}

// Adjust registra un movimiento de stock para una variante.
//
// Validaciones antes de cualquier escritura: cantidad entera positiva, tipo
// soportado, variante existente y de la organización. Dentro de la transacción:
// bloquea la fila de contadores, calcula NewStock (rechaza OUT que lo dejaría
// negativo), añade el movimiento al ledger, actualiza contadores y, si el
// movimiento OUT viene atribuido a un lote, descuenta su saldo. Si cualquier
// paso falla, nada queda escrito.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeAdjustment:
	default:
		// Los traslados tienen su propia operación (Transfer).
		return nil, domain.ErrInvalidInput
	}

	variant, err := uc.resolveVariant(ctx, input.OrganizationID, input.VariantID)
	if err != nil {
		return nil, err
	}

	var (
		movement   *entity.StockMovement
		finalState *entity.VariantStockState
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.VariantStockRepository,
		lotRepo repository.LotRepository,
	) error {
		// Exclusividad por variante: bloquea la fila de contadores antes de
		// leer CurrentStock. Dos ajustes concurrentes sobre la misma variante
		// se serializan aquí.
		state, err := stockRepo.GetForUpdate(ctx, input.OrganizationID, input.VariantID)
		if err != nil {
			return err
		}
		fillIdentity(state, variant)

		// El ledger es la fuente de verdad: si el contador no coincide con el
		// NewStock del último movimiento, algo corrompió el estado y no se
		// escribe nada más encima.
		last, err := movRepo.LastByVariant(ctx, input.OrganizationID, input.VariantID)
		if err != nil {
			return err
		}
		if last != nil && !last.NewStock.Equal(state.CurrentStock) {
			return domain.ErrInvariantViolation
		}

		newStock := state.CurrentStock.Add(entity.SignedDelta(input.Type, input.Quantity))
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		movement = &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: input.OrganizationID,
			ProductID:      variant.ProductID,
			VariantID:      input.VariantID,
			Type:           input.Type,
			Quantity:       input.Quantity,
			PreviousStock:  state.CurrentStock,
			NewStock:       newStock,
			Reason:         input.Reason,
			Reference:      input.Reference,
			LotNumber:      input.LotNumber,
			TransactionID:  uuid.New().String(),
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}

		state.CurrentStock = newStock
		state.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, state); err != nil {
			return err
		}

		// Solo las salidas consumen saldo de lote; las entradas atribuidas a un
		// lote lo referencian (el lote se registra aparte, vía LotUseCase).
		if input.LotNumber != "" && input.Type == entity.MovementTypeOut {
			if _, err := consumeLotTx(ctx, lotRepo, input.OrganizationID, input.LotNumber, input.Quantity, input.VariantID); err != nil {
				return err
			}
		}

		finalState = state
		return nil
	})
	if err != nil {
		return nil, uc.fail(err, input.VariantID, input.Type)
	}

	uc.invalidate(ctx, input.OrganizationID, input.VariantID)
	return &AdjustResult{
		Movement:     movement,
		Availability: inventory.ComputeAvailability(finalState, uc.defaultThreshold),
	}, nil
}

// TransferInput entrada para un traslado de stock entre variantes.
type TransferInput struct {
	OrganizationID string
	UserID         string
	FromVariantID  string
	ToVariantID    string
	Quantity       decimal.Decimal
	Reason         string
	Reference      string
}

// TransferResult las dos mitades del traslado y ambas disponibilidades.
type TransferResult struct {
	OutMovement *entity.StockMovement
	InMovement  *entity.StockMovement
	From        inventory.Availability
	To          inventory.Availability
}

// Transfer registra un traslado como par OUT origen / TRANSFER destino en la
// misma transacción, compartiendo TransactionID. La aplicación parcial es
// imposible: si la segunda mitad falla, la primera se revierte con el Rollback.
func (uc *AdjustStockUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if input.FromVariantID == "" || input.ToVariantID == "" || input.FromVariantID == input.ToVariantID {
		return nil, domain.ErrInvalidInput
	}

	fromVariant, err := uc.resolveVariant(ctx, input.OrganizationID, input.FromVariantID)
	if err != nil {
		return nil, err
	}
	toVariant, err := uc.resolveVariant(ctx, input.OrganizationID, input.ToVariantID)
	if err != nil {
		return nil, err
	}

	var (
		outMov, inMov      *entity.StockMovement
		fromState, toState *entity.VariantStockState
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.VariantStockRepository,
		_ repository.LotRepository,
	) error {
		// Bloquear ambas filas en orden lexicográfico para no provocar
		// deadlocks entre traslados cruzados A->B y B->A.
		states := make(map[string]*entity.VariantStockState, 2)
		ids := []string{input.FromVariantID, input.ToVariantID}
		sort.Strings(ids)
		for _, id := range ids {
			s, err := stockRepo.GetForUpdate(ctx, input.OrganizationID, id)
			if err != nil {
				return err
			}
			states[id] = s
		}
		fromState = states[input.FromVariantID]
		toState = states[input.ToVariantID]
		fillIdentity(fromState, fromVariant)
		fillIdentity(toState, toVariant)

		fromNew := fromState.CurrentStock.Sub(input.Quantity)
		if fromNew.IsNegative() {
			return domain.ErrInsufficientStock
		}
		toNew := toState.CurrentStock.Add(input.Quantity)

		now := time.Now()
		txID := uuid.New().String()
		outMov = &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: input.OrganizationID,
			ProductID:      fromVariant.ProductID,
			VariantID:      input.FromVariantID,
			Type:           entity.MovementTypeOut,
			Quantity:       input.Quantity,
			PreviousStock:  fromState.CurrentStock,
			NewStock:       fromNew,
			Reason:         input.Reason,
			Reference:      input.Reference,
			TransactionID:  txID,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		inMov = &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: input.OrganizationID,
			ProductID:      toVariant.ProductID,
			VariantID:      input.ToVariantID,
			Type:           entity.MovementTypeTransfer,
			Quantity:       input.Quantity,
			PreviousStock:  toState.CurrentStock,
			NewStock:       toNew,
			Reason:         input.Reason,
			Reference:      input.Reference,
			TransactionID:  txID,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}
		if err := movRepo.Create(ctx, outMov); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, inMov); err != nil {
			return err
		}

		fromState.CurrentStock = fromNew
		fromState.UpdatedAt = now
		toState.CurrentStock = toNew
		toState.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, fromState); err != nil {
			return err
		}
		return stockRepo.Upsert(ctx, toState)
	})
	if err != nil {
		return nil, uc.fail(err, input.FromVariantID, entity.MovementTypeTransfer)
	}

	uc.invalidate(ctx, input.OrganizationID, input.FromVariantID, input.ToVariantID)
	return &TransferResult{
		OutMovement: outMov,
		InMovement:  inMov,
		From:        inventory.ComputeAvailability(fromState, uc.defaultThreshold),
		To:          inventory.ComputeAvailability(toState, uc.defaultThreshold),
	}, nil
}

// Reserve aparta stock disponible contra una orden abierta. Las reservas no
// son movimientos: no tocan el ledger, solo el contador ReservedStock, bajo
// el mismo bloqueo de fila que los ajustes.
func (uc *AdjustStockUseCase) Reserve(ctx context.Context, organizationID, variantID string, quantity decimal.Decimal) (*inventory.Availability, error) {
	return uc.mutateReservation(ctx, organizationID, variantID, quantity, true)
}

// Release libera una reserva. Liberar más de lo reservado deja la reserva en cero.
func (uc *AdjustStockUseCase) Release(ctx context.Context, organizationID, variantID string, quantity decimal.Decimal) (*inventory.Availability, error) {
	return uc.mutateReservation(ctx, organizationID, variantID, quantity, false)
}

func (uc *AdjustStockUseCase) mutateReservation(ctx context.Context, organizationID, variantID string, quantity decimal.Decimal, reserve bool) (*inventory.Availability, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	variant, err := uc.resolveVariant(ctx, organizationID, variantID)
	if err != nil {
		return nil, err
	}

	var finalState *entity.VariantStockState
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		stockRepo repository.VariantStockRepository,
		_ repository.LotRepository,
	) error {
		state, err := stockRepo.GetForUpdate(ctx, organizationID, variantID)
		if err != nil {
			return err
		}
		fillIdentity(state, variant)

		if reserve {
			available := state.CurrentStock.Sub(state.ReservedStock)
			if quantity.GreaterThan(available) {
				return domain.ErrInsufficientStock
			}
			state.ReservedStock = state.ReservedStock.Add(quantity)
		} else {
			state.ReservedStock = state.ReservedStock.Sub(quantity)
			if state.ReservedStock.IsNegative() {
				state.ReservedStock = decimal.Zero
			}
		}
		state.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(ctx, state); err != nil {
			return err
		}
		finalState = state
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}

	uc.invalidate(ctx, organizationID, variantID)
	av := inventory.ComputeAvailability(finalState, uc.defaultThreshold)
	return &av, nil
}

// FulfillInput entrada del workflow de despacho de una orden.
type FulfillInput struct {
	OrganizationID string
	UserID         string
	OrderID        string
	Lines          []FulfillLine
}

// FulfillLine una línea de la orden a despachar.
type FulfillLine struct {
	VariantID string
	Quantity  decimal.Decimal
	LotNumber string
}

// FulfillResult movimientos y disponibilidades resultantes del despacho.
type FulfillResult struct {
	Movements      []*entity.StockMovement
	Availabilities []inventory.Availability
}

// FulfillOrder despacha todas las líneas de una orden en una sola transacción:
// un OUT por línea con Reference = OrderID y TransactionID compartido, liberando
// de paso la reserva correspondiente. Si cualquier línea no tiene stock, la
// orden completa se rechaza sin escribir nada (el workflow de órdenes muestra
// el error de fulfillment al usuario).
func (uc *AdjustStockUseCase) FulfillOrder(ctx context.Context, input FulfillInput) (*FulfillResult, error) {
	if input.OrderID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if err := validateQuantity(line.Quantity); err != nil {
			return nil, err
		}
	}

	variants := make(map[string]*entity.Variant, len(input.Lines))
	for _, line := range input.Lines {
		if _, ok := variants[line.VariantID]; ok {
			continue
		}
		v, err := uc.resolveVariant(ctx, input.OrganizationID, line.VariantID)
		if err != nil {
			return nil, err
		}
		variants[line.VariantID] = v
	}

	// Procesar en orden lexicográfico de variante para un orden de bloqueo
	// estable entre despachos concurrentes.
	lines := make([]FulfillLine, len(input.Lines))
	copy(lines, input.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].VariantID < lines[j].VariantID })

	var (
		movements   []*entity.StockMovement
		finalStates []*entity.VariantStockState
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.VariantStockRepository,
		lotRepo repository.LotRepository,
	) error {
		txID := uuid.New().String()
		now := time.Now()
		seen := make(map[string]*entity.VariantStockState)

		for _, line := range lines {
			state, ok := seen[line.VariantID]
			if !ok {
				var err error
				state, err = stockRepo.GetForUpdate(ctx, input.OrganizationID, line.VariantID)
				if err != nil {
					return err
				}
				fillIdentity(state, variants[line.VariantID])
				seen[line.VariantID] = state
				finalStates = append(finalStates, state)
			}

			newStock := state.CurrentStock.Sub(line.Quantity)
			if newStock.IsNegative() {
				return domain.ErrInsufficientStock
			}

			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				OrganizationID: input.OrganizationID,
				ProductID:      variants[line.VariantID].ProductID,
				VariantID:      line.VariantID,
				Type:           entity.MovementTypeOut,
				Quantity:       line.Quantity,
				PreviousStock:  state.CurrentStock,
				NewStock:       newStock,
				Reference:      input.OrderID,
				LotNumber:      line.LotNumber,
				TransactionID:  txID,
				CreatedAt:      now,
				CreatedBy:      input.UserID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			movements = append(movements, mov)

			state.CurrentStock = newStock
			// El despacho consume la reserva que la orden tenía apartada.
			state.ReservedStock = state.ReservedStock.Sub(line.Quantity)
			if state.ReservedStock.IsNegative() {
				state.ReservedStock = decimal.Zero
			}
			state.UpdatedAt = now
			if err := stockRepo.Upsert(ctx, state); err != nil {
				return err
			}

			if line.LotNumber != "" {
				if _, err := consumeLotTx(ctx, lotRepo, input.OrganizationID, line.LotNumber, line.Quantity, line.VariantID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(err, input.OrderID, "fulfillment")
	}

	ids := make([]string, 0, len(finalStates))
	availabilities := make([]inventory.Availability, 0, len(finalStates))
	for _, s := range finalStates {
		ids = append(ids, s.VariantID)
		availabilities = append(availabilities, inventory.ComputeAvailability(s, uc.defaultThreshold))
	}
	uc.invalidate(ctx, input.OrganizationID, ids...)

	return &FulfillResult{Movements: movements, Availabilities: availabilities}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// validateQuantity toda cantidad del motor debe ser un entero positivo.
func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() || !q.IsInteger() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// resolveVariant valida existencia y pertenencia a la organización.
func (uc *AdjustStockUseCase) resolveVariant(ctx context.Context, organizationID, variantID string) (*entity.Variant, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, classifyError(err)
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if variant.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return variant, nil
}

// fillIdentity completa la identidad de una fila de contadores recién creada en cero.
func fillIdentity(state *entity.VariantStockState, variant *entity.Variant) {
	state.VariantID = variant.ID
	state.ProductID = variant.ProductID
	state.OrganizationID = variant.OrganizationID
}

// fail clasifica el error y, si es una violación de invariante del ledger,
// la loguea con contexto completo: indica un bug aguas arriba, al cliente
// solo le llega un 500 genérico.
func (uc *AdjustStockUseCase) fail(err error, subject, operation string) error {
	err = classifyError(err)
	if errors.Is(err, domain.ErrInvariantViolation) && uc.log != nil {
		uc.log.Error().
			Str("subject", subject).
			Str("operation", operation).
			Err(err).
			Msg("cadena previous_stock -> new_stock inconsistente")
	}
	return err
}

func (uc *AdjustStockUseCase) invalidate(ctx context.Context, organizationID string, variantIDs ...string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Invalidate(ctx, organizationID, variantIDs...)
}
