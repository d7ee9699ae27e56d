// Package orders ingiere documentos normalizados de pedido del storefront y
// expone el lado de consulta del agregado.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/catalog"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a la
// tx; Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		pickRepo repository.PickRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// IngestUseCase persiste pedidos normalizados resolviendo cada línea contra
// el catálogo.
type IngestUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	resolver  *catalog.Resolver
}

// NewIngestUseCase construye el caso de uso.
func NewIngestUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, resolver *catalog.Resolver) *IngestUseCase {
	return &IngestUseCase{txRunner: txRunner, orderRepo: orderRepo, resolver: resolver}
}

// Ingest resuelve las líneas y persiste pedido + líneas en una transacción.
// Los identificadores sin coincidencia NO abortan la ingesta: la línea se
// conserva sin referencias (para visibilidad) y el identificador se reporta
// en la lista unmatched del resultado. Número de pedido repetido -> ErrDuplicate.
func (uc *IngestUseCase) Ingest(ctx context.Context, doc dto.NormalizedOrder) (*dto.IngestResult, error) {
	if doc.OrderNumber == "" || len(doc.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range doc.Items {
		if line.ExternalLineID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.orderRepo.GetByNumber(ctx, doc.OrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	// Resolución fuera de la tx: solo lecturas del catálogo.
	type resolvedLine struct {
		line  dto.NormalizedOrderLine
		match *catalog.Match
	}
	resolved := make([]resolvedLine, 0, len(doc.Items))
	var unmatched []string
	for _, line := range doc.Items {
		match, err := uc.resolver.ResolveLine(ctx, line.ExternalLineID)
		if err != nil {
			return nil, err
		}
		if match == nil {
			unmatched = append(unmatched, line.ExternalLineID)
		}
		resolved = append(resolved, resolvedLine{line: line, match: match})
	}

	now := time.Now()
	order := &entity.Order{
		ID:                uuid.New().String(),
		OrderNumber:       doc.OrderNumber,
		CustomerRef:       doc.CustomerRef,
		Status:            entity.OrderStatusOpen,
		FulfillmentStatus: entity.FulfillmentNotFulfilled,
		DispatchStatus:    entity.DispatchStatusNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		pickRepo repository.PickRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, rl := range resolved {
			item := &entity.OrderItem{
				ID:             uuid.New().String(),
				OrderID:        order.ID,
				ExternalLineID: rl.line.ExternalLineID,
				RequestedQty:   rl.line.Quantity,
				UnitPrice:      rl.line.UnitPrice,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if rl.match != nil {
				item.ProductID = &rl.match.Product.ID
				if rl.match.Package != nil {
					item.PackageID = &rl.match.Package.ID
				}
			}
			if err := orderRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.IngestResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Unmatched:   unmatched,
	}, nil
}
