package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/domain/dto"
	"order-tracker/internal/orders/domain/models"
	"order-tracker/internal/xpkg/clock"

	"github.com/go-playground/validator/v10"
)

// OrderService owns the order lifecycle: submission, listing, completion,
// deletion and the bulk resets. Every mutation goes through the repo in a
// single statement or transaction.
type OrderService struct {
	ctx       context.Context
	orderRepo core.IOrderRepo
	clk       *clock.Clock
	validate  *validator.Validate
	mylog     mylogger.Logger
}

func NewOrderService(
	ctx context.Context,
	orderRepo core.IOrderRepo,
	clk *clock.Clock,
	mylog mylogger.Logger,
) *OrderService {
	return &OrderService{
		ctx:       ctx,
		orderRepo: orderRepo,
		clk:       clk,
		validate:  validator.New(),
		mylog:     mylog,
	}
}

// ValidateOrder checks the submit payload: waiter and items are required and
// items must be structurally a JSON array (an empty one is fine).
func (os *OrderService) ValidateOrder(order dto.OrderRequest) error {
	if err := os.validate.Struct(order); err != nil {
		return fmt.Errorf("%w: waiter and items are required", core.ErrFieldIsEmpty)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(order.Items, &elems); err != nil {
		return core.ErrItemsNotSequence
	}

	return nil
}

// Create resolves the creation time (client value verbatim, otherwise the
// current local stamp), precomputes day_of_week and persists the order as NEW.
// The custom order id is assigned inside the repo transaction.
func (os *OrderService) Create(ctx context.Context, order dto.OrderRequest) (models.Order, error) {
	mylog := os.mylog.Action("create_order")

	orderTime := order.Time
	if orderTime == "" {
		orderTime = os.clk.Stamp()
	}

	paymentStatus := order.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.DefaultPaymentStatus
	}

	newOrder, err := os.orderRepo.Create(ctx, models.Order{
		Waiter:        order.Waiter,
		Customer:      order.Customer,
		Items:         string(order.Items),
		Status:        models.StatusNew,
		PaymentStatus: paymentStatus,
		Time:          orderTime,
		DayOfWeek:     core.DayOfWeek(orderTime, os.clk.Location()),
	})
	if err != nil {
		if errors.Is(err, core.ErrDBConn) {
			mylog.Error("Failed to connect to db", err)
			return models.Order{}, err
		}
		mylog.Error("Failed to save order record in db", err)
		return models.Order{}, fmt.Errorf("cannot save order in db: %w", err)
	}

	mylog.Info("Order created", "custom_order_id", newOrder.CustomOrderID)
	return newOrder, nil
}

func (os *OrderService) ListOpen(ctx context.Context) ([]dto.OrderView, error) {
	orders, err := os.orderRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list open orders: %w", err)
	}
	return toViews(orders), nil
}

// Complete is idempotent: completing an already-DONE order re-stamps its
// completion time and recomputes the duration.
func (os *OrderService) Complete(ctx context.Context, orderID int) (models.Order, error) {
	mylog := os.mylog.Action("complete_order").With("order_id", orderID)

	order, err := os.orderRepo.Complete(ctx, orderID)
	if err != nil {
		if errors.Is(err, core.ErrOrderNotFound) {
			mylog.Warn("Order not found")
			return models.Order{}, err
		}
		mylog.Error("Failed to complete order", err)
		return models.Order{}, fmt.Errorf("cannot complete order: %w", err)
	}

	mylog.Info("Order completed", "time_taken_minutes", *order.TimeTakenMinutes)
	return order, nil
}

func (os *OrderService) Delete(ctx context.Context, orderID int) (models.Order, error) {
	mylog := os.mylog.Action("delete_order").With("order_id", orderID)

	order, err := os.orderRepo.Delete(ctx, orderID)
	if err != nil {
		if errors.Is(err, core.ErrOrderNotFound) {
			mylog.Warn("Order not found")
			return models.Order{}, err
		}
		mylog.Error("Failed to delete order", err)
		return models.Order{}, fmt.Errorf("cannot delete order: %w", err)
	}

	mylog.Info("Order deleted", "custom_order_id", order.CustomOrderID)
	return order, nil
}

func (os *OrderService) ListCompleted(ctx context.Context, todayOnly bool) ([]dto.OrderView, error) {
	orders, err := os.orderRepo.ListCompleted(ctx, todayOnly)
	if err != nil {
		return nil, fmt.Errorf("cannot list completed orders: %w", err)
	}
	return toViews(orders), nil
}

func (os *OrderService) CompletedToday(ctx context.Context) (dto.CompletedTodayResponse, error) {
	stats, err := os.orderRepo.CompletedStats(ctx, true)
	if err != nil {
		return dto.CompletedTodayResponse{}, fmt.Errorf("cannot compute today's summary: %w", err)
	}
	return dto.CompletedTodayResponse{
		CompletedOrdersToday: stats.Count,
		AvgCompletionTime:    core.Round1(stats.AvgMinutes),
	}, nil
}

func (os *OrderService) CompletedTotal(ctx context.Context) (dto.CompletedTotalResponse, error) {
	stats, err := os.orderRepo.CompletedStats(ctx, false)
	if err != nil {
		return dto.CompletedTotalResponse{}, fmt.Errorf("cannot compute all-time summary: %w", err)
	}
	return dto.CompletedTotalResponse{
		CompletedOrdersTotal: stats.Count,
		AvgCompletionTime:    core.Round1(stats.AvgMinutes),
	}, nil
}

func (os *OrderService) ResetCompleted(ctx context.Context) (int64, error) {
	deleted, err := os.orderRepo.ResetCompleted(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot reset completed orders: %w", err)
	}
	os.mylog.Action("reset_completed").Info("Completed orders removed", "deleted", deleted)
	return deleted, nil
}

func (os *OrderService) ResetAll(ctx context.Context) (int64, error) {
	deleted, err := os.orderRepo.ResetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot clear orders: %w", err)
	}
	os.mylog.Action("reset_all").Info("All orders removed", "deleted", deleted)
	return deleted, nil
}

func toViews(orders []models.Order) []dto.OrderView {
	views := make([]dto.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toView(order))
	}
	return views
}

func toView(order models.Order) dto.OrderView {
	return dto.OrderView{
		ID:               order.ID,
		CustomOrderID:    order.CustomOrderID,
		Waiter:           order.Waiter,
		Customer:         order.Customer,
		Items:            rehydrateItems(order.Items),
		Time:             order.Time,
		PaymentStatus:    order.PaymentStatus,
		CompletionTime:   order.CompletionTime,
		TimeTakenMinutes: order.TimeTakenMinutes,
	}
}

// rehydrateItems embeds the stored blob as-is when it is valid JSON, so the
// submitted structure round-trips exactly. Anything else is rendered as a
// JSON string rather than corrupting the response document.
func rehydrateItems(blob string) json.RawMessage {
	if json.Valid([]byte(blob)) {
		return json.RawMessage(blob)
	}
	quoted, _ := json.Marshal(blob)
	return quoted
}
