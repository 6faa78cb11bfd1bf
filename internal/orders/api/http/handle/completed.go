package handle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/app/services"
)

// CompletedHandler serves the completed-order summaries, listings and the
// administrative bulk resets.
type CompletedHandler struct {
	orderService *services.OrderService
	mylog        mylogger.Logger
}

func NewCompletedHandler(orderService *services.OrderService, mylog mylogger.Logger) *CompletedHandler {
	return &CompletedHandler{
		orderService: orderService,
		mylog:        mylog,
	}
}

func (ch *CompletedHandler) SummaryToday() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		resp, err := ch.orderService.CompletedToday(ctx)
		if err != nil {
			ch.fail(w, "failed to compute today's summary", err)
			return
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

func (ch *CompletedHandler) SummaryTotal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		resp, err := ch.orderService.CompletedTotal(ctx)
		if err != nil {
			ch.fail(w, "failed to compute all-time summary", err)
			return
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

func (ch *CompletedHandler) ListToday() http.HandlerFunc {
	return ch.list(true)
}

func (ch *CompletedHandler) ListAll() http.HandlerFunc {
	return ch.list(false)
}

func (ch *CompletedHandler) list(todayOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		orders, err := ch.orderService.ListCompleted(ctx, todayOnly)
		if err != nil {
			ch.fail(w, "failed to list completed orders", err)
			return
		}
		jsonResponse(w, http.StatusOK, orders)
	}
}

func (ch *CompletedHandler) ResetCompleted() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		deleted, err := ch.orderService.ResetCompleted(ctx)
		if err != nil {
			ch.fail(w, "failed to reset completed orders", err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Removed %d completed orders", deleted),
		})
	}
}

func (ch *CompletedHandler) ResetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		deleted, err := ch.orderService.ResetAll(ctx)
		if err != nil {
			ch.fail(w, "failed to clear orders", err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Removed %d orders", deleted),
		})
	}
}

func (ch *CompletedHandler) fail(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, core.ErrDBConn) {
		jsonError(w, http.StatusInternalServerError, KindPersistence, err)
		return
	}
	ch.mylog.Action("completed_handler_failed").Error(msg, err)
	jsonError(w, http.StatusInternalServerError, KindInternal, errors.New(msg))
}
