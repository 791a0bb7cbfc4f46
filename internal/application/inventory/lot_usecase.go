package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain"
	"github.com/tu-usuario/stock-engine/internal/domain/entity"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
	"github.com/tu-usuario/stock-engine/internal/domain/repository"
	"github.com/tu-usuario/stock-engine/pkg/search"
)

// LotUseCase gestiona los lotes: registro en recepción, consumo y listados
// con estado derivado. Los lotes son trazabilidad opcional sobre el ledger,
// no una partición estricta del stock.
type LotUseCase struct {
	txRunner    TxRunner
	lotRepo     repository.LotRepository
	stockRepo   repository.VariantStockRepository
	variantRepo repository.VariantRepository
	horizonDays int
	urgentDays  int
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	stockRepo repository.VariantStockRepository,
	variantRepo repository.VariantRepository,
	horizonDays, urgentDays int,
) *LotUseCase {
	return &LotUseCase{
		txRunner:    txRunner,
		lotRepo:     lotRepo,
		stockRepo:   stockRepo,
		variantRepo: variantRepo,
		horizonDays: horizonDays,
		urgentDays:  urgentDays,
	}
}

// CreateLotInput entrada para registrar un lote recibido.
type CreateLotInput struct {
	OrganizationID  string
	UserID          string
	LotNumber       string
	VariantID       string
	InitialQuantity decimal.Decimal
	ManufacturedAt  time.Time
	ExpiryDate      *time.Time
	Supplier        string
	Notes           string
}

// Create registra un lote nuevo. Valida número de lote (único por
// organización), cantidad inicial entera positiva y que el vencimiento,
// si viene, no esté en el pasado.
func (uc *LotUseCase) Create(ctx context.Context, input CreateLotInput) (*dto.LotDTO, error) {
	if input.LotNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateQuantity(input.InitialQuantity); err != nil {
		return nil, err
	}
	now := time.Now()
	if input.ExpiryDate != nil && input.ExpiryDate.Before(now) {
		return nil, domain.ErrInvalidInput
	}

	variant, err := uc.variantRepo.GetByID(ctx, input.VariantID)
	if err != nil {
		return nil, classifyError(err)
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if variant.OrganizationID != input.OrganizationID {
		return nil, domain.ErrForbidden
	}

	lot := &entity.Lot{
		ID:              uuid.New().String(),
		OrganizationID:  input.OrganizationID,
		LotNumber:       input.LotNumber,
		ProductID:       variant.ProductID,
		VariantID:       input.VariantID,
		InitialQuantity: input.InitialQuantity,
		CurrentQuantity: input.InitialQuantity,
		ManufacturedAt:  input.ManufacturedAt,
		ExpiryDate:      input.ExpiryDate,
		Supplier:        input.Supplier,
		Notes:           input.Notes,
		CreatedAt:       now,
		CreatedBy:       input.UserID,
	}
	if err := uc.lotRepo.Create(ctx, lot); err != nil {
		return nil, classifyError(err)
	}

	out := dto.NewLotDTO(lot, inventory.ClassifyLot(lot, now, uc.horizonDays, uc.urgentDays))
	return &out, nil
}

// Consume descuenta saldo de un lote de forma transaccional, con bloqueo de
// fila. Si la cantidad excede el saldo, rechaza con ErrLotOverdraw y no
// escribe nada.
func (uc *LotUseCase) Consume(ctx context.Context, organizationID, lotNumber string, quantity decimal.Decimal) (*dto.LotDTO, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var lot *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.VariantStockRepository,
		lotRepo repository.LotRepository,
	) error {
		var err error
		// Sin contexto de variante: el consumo directo opera sobre el lote tal cual.
		lot, err = consumeLotTx(ctx, lotRepo, organizationID, lotNumber, quantity, "")
		return err
	})
	if err != nil {
		return nil, classifyError(err)
	}

	out := dto.NewLotDTO(lot, inventory.ClassifyLot(lot, time.Now(), uc.horizonDays, uc.urgentDays))
	return &out, nil
}

// List devuelve los lotes de la organización con su estado derivado,
// filtrados por estado (all|active|expiring|depleted) y búsqueda por número
// de lote o proveedor. Todo el listado se clasifica con el mismo "now" para
// que filas, filtros y conteos de alertas sean coherentes entre sí.
func (uc *LotUseCase) List(ctx context.Context, organizationID, status, searchTerm string) (*dto.LotListResponse, error) {
	switch status {
	case "", "all", entity.LotStatusActive, entity.LotStatusExpiring, entity.LotStatusDepleted:
	default:
		return nil, domain.ErrInvalidInput
	}

	lots, err := uc.lotRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, classifyError(err)
	}

	now := time.Now()
	resp := &dto.LotListResponse{Lots: []dto.LotDTO{}}
	for _, lot := range lots {
		c := inventory.ClassifyLot(lot, now, uc.horizonDays, uc.urgentDays)

		resp.Counts.Total++
		switch c.Status {
		case entity.LotStatusActive:
			resp.Counts.Active++
		case entity.LotStatusExpiring:
			resp.Counts.Expiring++
		case entity.LotStatusDepleted:
			resp.Counts.Depleted++
		}
		if c.Urgent {
			resp.Counts.Urgent++
		}

		if status != "" && status != "all" && c.Status != status {
			continue
		}
		if !search.Matches(lot.LotNumber+" "+lot.Supplier, searchTerm) {
			continue
		}
		resp.Lots = append(resp.Lots, dto.NewLotDTO(lot, c))
	}
	return resp, nil
}

// Reconciliation informe de conciliación: saldo total de lotes vs. contador
// de la variante. Solo lectura; el delta no se trata como error porque no
// todo movimiento se atribuye a un lote.
func (uc *LotUseCase) Reconciliation(ctx context.Context, organizationID, variantID string) (*dto.LotReconciliationDTO, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	state, err := uc.stockRepo.Get(ctx, organizationID, variantID)
	if err != nil {
		return nil, classifyError(err)
	}
	total, err := uc.lotRepo.SumCurrentByVariant(ctx, organizationID, variantID)
	if err != nil {
		return nil, classifyError(err)
	}
	return &dto.LotReconciliationDTO{
		VariantID:    variantID,
		CurrentStock: state.CurrentStock,
		LotTotal:     total,
		Delta:        state.CurrentStock.Sub(total),
	}, nil
}

// consumeLotTx descuenta saldo de un lote dentro de una transacción ya
// abierta (lo comparten el consumo directo y los ajustes OUT atribuidos a lote).
// Si forVariantID viene, el lote debe pertenecer a esa variante: un OUT de una
// variante no puede descontar el lote de otra.
func consumeLotTx(ctx context.Context, lotRepo repository.LotRepository, organizationID, lotNumber string, quantity decimal.Decimal, forVariantID string) (*entity.Lot, error) {
	lot, err := lotRepo.GetByNumberForUpdate(ctx, organizationID, lotNumber)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if forVariantID != "" && lot.VariantID != forVariantID {
		return nil, domain.ErrInvalidInput
	}
	if quantity.GreaterThan(lot.CurrentQuantity) {
		return nil, domain.ErrLotOverdraw
	}
	lot.CurrentQuantity = lot.CurrentQuantity.Sub(quantity)
	if err := lotRepo.UpdateQuantity(ctx, lot.ID, lot.CurrentQuantity); err != nil {
		return nil, err
	}
	return lot, nil
}
