// Package dispatch sincroniza pedidos preparados con el ERP Netsis: convierte
// un pedido FULFILLED en una remisión (irsaliye) garantizando que Netsis
// reciba las cantidades realmente pickeadas por el almacén, y expone las
// operaciones compensatorias (clear, reset masivo) para recuperarse de
// escrituras parciales o incorrectas del lado ERP.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/fulfillment"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/netsis"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/pkg/logger"
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

// UseCase es el sincronizador de despachos. Máquina de estados por pedido
// sobre los campos de remisión:
//
//	NONE -> PENDING -> COMMITTED
//
// con transiciones compensatorias COMMITTED -> CLEARED y PENDING|error ->
// CLEARED vía acción administrativa.
type UseCase struct {
	txRunner TxRunner
	erp      netsis.Client // nil = integración no configurada
	log      *logger.Logger
}

// NewUseCase construye el sincronizador. erp puede ser nil si la integración
// no está configurada: toda creación fallará como ERP inalcanzable.
func NewUseCase(txRunner TxRunner, erp netsis.Client, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, erp: erp, log: log}
}

// snapshot es lo que la primera transacción lee bajo lock y la llamada de red
// usa después, ya sin lock.
type snapshot struct {
	orderNumber string
	lines       []netsis.Line
}

// Create crea la remisión en Netsis para un pedido completamente preparado.
//
// Precondiciones (rechazo síncrono, sin cambio de estado): el estado derivado
// de preparación debe ser FULFILLED y el pedido no puede tener una remisión
// activa (PENDING cuenta como activa: hay una creación en vuelo).
//
// La llamada de red NO se hace bajo el lock del pedido: la primera tx lee las
// cantidades del almacén, marca PENDING y comitea; el marcador PENDING cumple
// el rol del lock durante la espera de red sin bloquear otros pedidos. La
// segunda tx persiste el desenlace. Un fallo externo deja el detalle verbatim
// en dispatch_error y el pedido reintentable (el reintento es re-invocar
// Create; no hay retry automático).
func (uc *UseCase) Create(ctx context.Context, orderID string) (*dto.DispatchResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var snap snapshot
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
		if order.HasActiveDispatch() {
			return domain.ErrAlreadyDispatched
		}

		items, err := orderRepo.GetItems(ctx, orderID)
		if err != nil {
			return err
		}
		// El estado se deriva en el momento, no se confía en la columna:
		// es la única forma de garantizar que las cantidades leídas bajo el
		// lock son las que se reportan.
		if fulfillment.Derive(items) != fulfillment.Fulfilled {
			return domain.ErrNotFulfilled
		}

		snap.orderNumber = order.OrderNumber
		snap.lines, err = buildLines(ctx, productRepo, items)
		if err != nil {
			return err
		}

		order.DispatchStatus = entity.DispatchStatusPending
		order.DispatchError = nil
		return orderRepo.UpdateDispatch(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	// Fuera de la transacción: espera de red de hasta 60 s. El pedido queda
	// marcado PENDING, no bloqueado.
	noteID, source, erpErr := uc.submit(ctx, snap)

	if erpErr != nil {
		if persistErr := uc.persistFailure(ctx, orderID, erpErr); persistErr != nil {
			uc.log.Error().Err(persistErr).Str("order_id", orderID).Msg("no se pudo persistir el error de despacho")
		}
		if netsis.IsRejection(erpErr) {
			return nil, fmt.Errorf("%w: %s", domain.ErrErpRejected, erpErr.Error())
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrErpUnreachable, erpErr.Error())
	}

	payload, _ := json.Marshal(netsisRequestAudit{
		OrderRef: snap.orderNumber,
		Source:   source,
		Lines:    snap.lines,
	})
	if err := uc.persistSuccess(ctx, orderID, noteID, string(payload)); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("note_id", noteID).
		Str("quantities_source", source).
		Int("lines", len(snap.lines)).
		Msg("remisión creada en netsis")

	linesCreated := len(snap.lines)
	message := "remisión creada con cantidades del almacén"
	if source == dto.QuantitiesSourceErpOrder {
		// El fallback no crea líneas explícitas; Netsis usó su propio pedido.
		linesCreated = 0
		message = "remisión creada por conversión del pedido en Netsis (cantidades del ERP, degradado)"
	}
	return &dto.DispatchResponse{
		Success:          true,
		OrderID:          orderID,
		NoteID:           noteID,
		QuantitiesSource: source,
		LinesCreated:     linesCreated,
		Message:          message,
	}, nil
}

// netsisRequestAudit es lo que se guarda en dispatch_payload para auditoría.
type netsisRequestAudit struct {
	OrderRef string        `json:"order_ref"`
	Source   string        `json:"source"`
	Lines    []netsis.Line `json:"lines"`
}

// submit intenta las dos estrategias en orden fijo: primero la manual línea a
// línea con las cantidades del almacén; solo si Netsis no reconoce la
// referencia del pedido, el fallback de conversión. Devuelve siempre qué
// estrategia corrió (QuantitiesSource), nunca se infiere después del hecho.
func (uc *UseCase) submit(ctx context.Context, snap snapshot) (noteID, source string, err error) {
	if uc.erp == nil {
		return "", "", fmt.Errorf("cliente netsis no configurado")
	}

	noteID, err = uc.erp.CreateDispatchLines(ctx, snap.orderNumber, snap.lines)
	if err == nil {
		return noteID, dto.QuantitiesSourceWarehouse, nil
	}
	if !netsis.IsOrderUnknown(err) {
		return "", "", err
	}

	uc.log.Warn().
		Str("order_ref", snap.orderNumber).
		Msg("netsis no reconoce el pedido para creación línea a línea; usando conversión (cantidades del ERP)")

	noteID, err = uc.erp.ConvertOrderToDispatch(ctx, snap.orderNumber)
	if err != nil {
		return "", "", err
	}
	return noteID, dto.QuantitiesSourceErpOrder, nil
}

// buildLines arma las líneas de la remisión desde las cantidades pickeadas
// por el almacén. Nunca desde las cantidades del pedido: el almacén es la
// fuente de verdad de lo que realmente salió.
func buildLines(ctx context.Context, productRepo repository.ProductRepository, items []*entity.OrderItem) ([]netsis.Line, error) {
	lines := make([]netsis.Line, 0, len(items))
	for _, it := range items {
		if !it.Resolved() || it.PickedQty == 0 {
			continue
		}
		product, err := productRepo.GetByID(ctx, *it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s de la línea %s no existe: %w", *it.ProductID, it.ID, domain.ErrConflict)
		}
		lines = append(lines, netsis.Line{
			StockCode: product.StockCode(),
			Quantity:  it.PickedQty,
		})
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFulfilled
	}
	return lines, nil
}

// persistSuccess guarda el note id y marca COMMITTED. Relee bajo lock: el
// estado pudo cambiar durante la espera de red.
func (uc *UseCase) persistSuccess(ctx context.Context, orderID, noteID, payload string) error {
	return uc.txRunner.Run(ctx, func(
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
		order.DispatchNoteID = &noteID
		order.DispatchStatus = entity.DispatchStatusCommitted
		order.DispatchError = nil
		order.DispatchPayload = &payload
		return orderRepo.UpdateDispatch(ctx, order)
	})
}

// persistFailure guarda el error verbatim y devuelve el pedido a NONE:
// nunca COMMITTED en fallo, el pedido queda elegible para reintento.
func (uc *UseCase) persistFailure(ctx context.Context, orderID string, erpErr error) error {
	return uc.txRunner.Run(ctx, func(
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
		msg := erpErr.Error()
		order.DispatchStatus = entity.DispatchStatusNone
		order.DispatchError = &msg
		return orderRepo.UpdateDispatch(ctx, order)
	})
}

// Clear revierte la remisión de un pedido: note id a NULL, estado al
// centinela CLEARED (distingue "nunca despachado" de "despachado y
// revertido") y limpia error y payload. Se usa cuando la nota del lado ERP
// debe recrearse o se creó mal (p. ej. corrió el fallback con cantidades
// equivocadas).
func (uc *UseCase) Clear(ctx context.Context, orderID string) (*dto.ClearDispatchResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

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
		if order.DispatchStatus == entity.DispatchStatusNone && order.DispatchNoteID == nil && order.DispatchError == nil {
			// Nada que revertir: no se fabrica un CLEARED falso.
			return domain.ErrConflict
		}
		order.DispatchNoteID = nil
		order.DispatchStatus = entity.DispatchStatusCleared
		order.DispatchError = nil
		order.DispatchPayload = nil
		return orderRepo.UpdateDispatch(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Msg("remisión revertida")
	return &dto.ClearDispatchResponse{
		Success: true,
		OrderID: orderID,
		Message: "remisión revertida; el pedido puede despacharse de nuevo",
	}, nil
}

// ResetAll es el reset administrativo masivo: en UNA transacción limpia los
// campos de remisión de todos los pedidos, degrada fulfilled -> open,
// fulfillment_status -> NOT_FULFILLED, borra la evidencia de picking y pone
// los contadores en cero. La ejecución parcial es un defecto: o todo o nada.
func (uc *UseCase) ResetAll(ctx context.Context) (*dto.ResetAllResponse, error) {
	var touched int64
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		pickRepo repository.PickRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := pickRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := orderRepo.ZeroPickedAll(ctx); err != nil {
			return err
		}
		var err error
		touched, err = orderRepo.ResetAllDispatchAndStatus(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Warn().Int64("orders", touched).Msg("reset masivo ejecutado")
	return &dto.ResetAllResponse{
		Success:     true,
		OrdersReset: touched,
		Message:     fmt.Sprintf("%d pedidos reseteados a open/NOT_FULFILLED sin remisión", touched),
	}, nil
}

// IsPrecondition indica si err es un rechazo de precondición del despacho
// (sin cambio de estado), para el mapeo HTTP.
func IsPrecondition(err error) bool {
	return errors.Is(err, domain.ErrNotFulfilled) || errors.Is(err, domain.ErrAlreadyDispatched)
}
