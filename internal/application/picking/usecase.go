// Package picking implementa el libro de escaneos: registra eventos de
// escaneo contra líneas de pedido, mantiene picked_quantity como vista
// materializada del log y recalcula el estado de preparación del pedido
// tras cada mutación.
package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/fulfillment"
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

// UseCase registra escaneos y ejecuta el reset administrativo por pedido.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// RecordScan acepta o rechaza un escaneo contra una línea de pedido.
//
// Todo ocurre en una transacción con la fila del pedido y la de la línea
// bloqueadas (FOR UPDATE): un escaneo y una creación de remisión sobre el
// mismo pedido se serializan. Orden de bloqueo fijo pedido -> línea para no
// interbloquear con el despachador.
//
// El evento PickScan se inserta ANTES de actualizar el contador: el log es
// la fuente de verdad y picked_quantity su vista materializada.
func (uc *UseCase) RecordScan(ctx context.Context, in dto.RecordScanRequest) (*dto.RecordScanResponse, error) {
	if in.OrderItemID == "" || in.Barcode == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.RecordScanResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		pickRepo repository.PickRepository,
		productRepo repository.ProductRepository,
	) error {
		// Lectura sin lock solo para conocer el pedido; los locks van en orden.
		item, err := orderRepo.GetItemByID(ctx, in.OrderItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		order, err := orderRepo.GetByIDForUpdate(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrItemNotFound
		}

		item, err = orderRepo.GetItemByIDForUpdate(ctx, in.OrderItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		if err := validateBarcode(ctx, productRepo, item, in.Barcode); err != nil {
			return err
		}

		const scanQty = 1
		if item.PickedQty+scanQty > item.RequestedQty {
			// Rechazado, no recortado en silencio.
			return domain.ErrOverPick
		}

		pick, err := pickRepo.GetOpenByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		if pick == nil {
			pick = &entity.Pick{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				Status:    entity.PickStatusOpen,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := pickRepo.Create(ctx, pick); err != nil {
				return err
			}
		}

		scan := &entity.PickScan{
			ID:          uuid.New().String(),
			PickID:      pick.ID,
			OrderItemID: item.ID,
			Barcode:     in.Barcode,
			Quantity:    scanQty,
			ScannedAt:   now,
		}
		if err := pickRepo.CreateScan(ctx, scan); err != nil {
			return err
		}
		if err := orderRepo.UpdateItemPicked(ctx, item.ID, item.PickedQty+scanQty); err != nil {
			return err
		}

		items, err := orderRepo.GetItems(ctx, order.ID)
		if err != nil {
			return err
		}
		status := fulfillment.Derive(items)

		orderStatus := order.Status
		if status == fulfillment.Fulfilled {
			// Promoción explícita del estado grueso; la degradación solo la
			// hace el reset.
			orderStatus = entity.OrderStatusFulfilled
			if err := pickRepo.UpdateStatus(ctx, pick.ID, entity.PickStatusCompleted); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(ctx, order.ID, orderStatus, string(status)); err != nil {
			return err
		}

		out = &dto.RecordScanResponse{
			Accepted:          true,
			OrderItemID:       item.ID,
			NewPickedQuantity: item.PickedQty + scanQty,
			FulfillmentStatus: string(status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validateBarcode verifica que el barcode escaneado pertenezca al producto o
// paquete resuelto de la línea. Una línea sin resolver no tiene barcode
// esperado: siempre mismatch.
func validateBarcode(ctx context.Context, productRepo repository.ProductRepository, item *entity.OrderItem, barcode string) error {
	if !item.Resolved() {
		return domain.ErrBarcodeMismatch
	}
	if item.PackageID != nil {
		pkg, err := productRepo.GetPackageByID(ctx, *item.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil || pkg.Barcode != barcode {
			return domain.ErrBarcodeMismatch
		}
		return nil
	}
	product, err := productRepo.GetByID(ctx, *item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrBarcodeMismatch
	}
	if barcode == product.SKU {
		return nil
	}
	if product.ErpCode != "" && barcode == product.ErpCode {
		return nil
	}
	return domain.ErrBarcodeMismatch
}

// ResetOrder borra los escaneos del pedido, pone picked_quantity = 0 en
// todas sus líneas y degrada el estado, todo en una sola transacción:
// la aplicación parcial (escaneos borrados pero contadores sin resetear, o
// al revés) sería una violación de invariante. No toca los campos de
// remisión: eso es trabajo de clearDispatch.
func (uc *UseCase) ResetOrder(ctx context.Context, orderID string) (*dto.ResetOrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ResetOrderResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		pickRepo repository.PickRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		scans, err := pickRepo.ListScansByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := pickRepo.DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		if err := orderRepo.ZeroPickedByOrder(ctx, orderID); err != nil {
			return err
		}

		status := order.Status
		if status == entity.OrderStatusFulfilled {
			status = entity.OrderStatusOpen
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, status, entity.FulfillmentNotFulfilled); err != nil {
			return err
		}

		out = &dto.ResetOrderResponse{
			Success:      true,
			OrderID:      orderID,
			ScansDeleted: len(scans),
			Message:      fmt.Sprintf("picking reseteado: %d escaneos eliminados", len(scans)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
