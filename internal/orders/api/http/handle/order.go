package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/app/services"
	"order-tracker/internal/orders/domain/dto"
)

type OrderHandler struct {
	orderService *services.OrderService
	mylog        mylogger.Logger
}

func NewOrderHandler(orderService *services.OrderService, mylog mylogger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		mylog:        mylog,
	}
}

func (oh *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var order dto.OrderRequest

		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			oh.mylog.Action("parse_failed").Error("Failed to parse order", err)
			jsonError(w, http.StatusBadRequest, KindClientInput, errors.New("failed to parse JSON"))
			return
		}

		if err := oh.orderService.ValidateOrder(order); err != nil {
			jsonError(w, http.StatusBadRequest, KindClientInput, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		newOrder, err := oh.orderService.Create(ctx, order)
		if err != nil {
			if errors.Is(err, core.ErrDBConn) {
				jsonError(w, http.StatusInternalServerError, KindPersistence, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, KindInternal, errors.New("failed to add order"))
			return
		}

		jsonResponse(w, http.StatusCreated, dto.CreateOrderResponse{
			Message: "Order created",
			OrderID: newOrder.CustomOrderID,
		})
	}
}

func (oh *OrderHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		orders, err := oh.orderService.ListOpen(ctx)
		if err != nil {
			if errors.Is(err, core.ErrDBConn) {
				jsonError(w, http.StatusInternalServerError, KindPersistence, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, KindInternal, errors.New("failed to list orders"))
			return
		}

		jsonResponse(w, http.StatusOK, orders)
	}
}

func (oh *OrderHandler) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathOrderID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, KindClientInput, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.orderService.Complete(ctx, orderID)
		if err != nil {
			if errors.Is(err, core.ErrOrderNotFound) {
				jsonErrorDetails(w, http.StatusNotFound, KindNotFound, err, map[string]int{"id": orderID})
				return
			}
			if errors.Is(err, core.ErrDBConn) {
				jsonError(w, http.StatusInternalServerError, KindPersistence, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, KindInternal, errors.New("failed to complete order"))
			return
		}

		jsonResponse(w, http.StatusOK, dto.CompleteOrderResponse{
			Message:          "Order marked as done",
			CompletionTime:   *order.CompletionTime,
			TimeTakenMinutes: *order.TimeTakenMinutes,
		})
	}
}

func (oh *OrderHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathOrderID(r)
		if err != nil {
			jsonError(w, http.StatusBadRequest, KindClientInput, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		order, err := oh.orderService.Delete(ctx, orderID)
		if err != nil {
			if errors.Is(err, core.ErrOrderNotFound) {
				jsonErrorDetails(w, http.StatusNotFound, KindNotFound, err, map[string]int{"id": orderID})
				return
			}
			if errors.Is(err, core.ErrDBConn) {
				jsonError(w, http.StatusInternalServerError, KindPersistence, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, KindInternal, errors.New("failed to delete order"))
			return
		}

		jsonResponse(w, http.StatusOK, dto.DeleteOrderResponse{
			Message: "Order deleted",
			DeletedOrder: dto.DeletedOrder{
				ID:            order.ID,
				CustomOrderID: order.CustomOrderID,
				Waiter:        order.Waiter,
			},
		})
	}
}

func pathOrderID(r *http.Request) (int, error) {
	orderID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, errors.New("order id must be an integer")
	}
	return orderID, nil
}
