package orders

import (
	"context"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/application/dto"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/entity"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/fulfillment"
	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/domain/repository"
)

// QueryUseCase es el lado de lectura del agregado de pedidos.
type QueryUseCase struct {
	orderRepo repository.OrderRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orderRepo repository.OrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// GetByID obtiene un pedido con sus líneas; (nil, nil) si no existe.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	items, err := uc.orderRepo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return toOrderResponse(order, true), nil
}

// List lista pedidos con paginación (sin líneas).
func (uc *QueryUseCase) List(ctx context.Context, limit, offset int) (*dto.OrderListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	ordersList, err := uc.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(ordersList)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Count: len(ordersList)},
	}
	for _, o := range ordersList {
		out.Items = append(out.Items, *toOrderResponse(o, false))
	}
	return out, nil
}

// GetFulfillmentStatus deriva el estado de preparación desde las líneas
// actuales. No lee la columna persistida: el estado es función pura del
// progreso de picking y reproducir el mismo historial siempre da lo mismo.
func (uc *QueryUseCase) GetFulfillmentStatus(ctx context.Context, orderID string) (*dto.FulfillmentStatusResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &dto.FulfillmentStatusResponse{
		OrderID:           orderID,
		FulfillmentStatus: string(fulfillment.Derive(items)),
	}, nil
}

func toOrderResponse(o *entity.Order, withItems bool) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerRef:       o.CustomerRef,
		Status:            o.Status,
		FulfillmentStatus: o.FulfillmentStatus,
		DispatchNoteID:    o.DispatchNoteID,
		DispatchStatus:    o.DispatchStatus,
		DispatchError:     o.DispatchError,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if withItems {
		for _, it := range o.Items {
			out.Items = append(out.Items, dto.OrderItemResponse{
				ID:             it.ID,
				ExternalLineID: it.ExternalLineID,
				ProductID:      it.ProductID,
				PackageID:      it.PackageID,
				RequestedQty:   it.RequestedQty,
				PickedQty:      it.PickedQty,
				UnitPrice:      it.UnitPrice,
			})
		}
	}
	return out
}
