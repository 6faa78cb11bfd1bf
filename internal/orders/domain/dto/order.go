package dto

import (
	"encoding/json"
)

// OrderRequest is the submit-order payload. Items stays raw so the stored
// blob round-trips exactly as the client sent it; Time, when present, is
// stored verbatim without validation.
type OrderRequest struct {
	Waiter        string          `json:"waiter" validate:"required"`
	Customer      string          `json:"customer"`
	Items         json.RawMessage `json:"items" validate:"required"`
	Time          string          `json:"time"`
	PaymentStatus string          `json:"paymentStatus"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

type CompleteOrderResponse struct {
	Message          string `json:"message"`
	CompletionTime   string `json:"completion_time"`
	TimeTakenMinutes int    `json:"time_taken_minutes"`
}

type DeleteOrderResponse struct {
	Message      string       `json:"message"`
	DeletedOrder DeletedOrder `json:"deleted_order"`
}

// DeletedOrder is the identity snapshot echoed back after a hard delete.
type DeletedOrder struct {
	ID            int    `json:"id"`
	CustomOrderID string `json:"custom_order_id"`
	Waiter        string `json:"waiter"`
}

// OrderView is the read shape for both open and completed listings.
// Completion fields appear only on DONE orders.
type OrderView struct {
	ID               int             `json:"id"`
	CustomOrderID    string          `json:"custom_order_id"`
	Waiter           string          `json:"waiter"`
	Customer         string          `json:"customer"`
	Items            json.RawMessage `json:"items"`
	Time             string          `json:"time"`
	PaymentStatus    string          `json:"paymentStatus"`
	CompletionTime   *string         `json:"completion_time,omitempty"`
	TimeTakenMinutes *int            `json:"time_taken_minutes,omitempty"`
}

type CompletedTodayResponse struct {
	CompletedOrdersToday int     `json:"completed_orders_today"`
	AvgCompletionTime    float64 `json:"avg_completion_time_minutes"`
}

type CompletedTotalResponse struct {
	CompletedOrdersTotal int     `json:"completed_orders_total"`
	AvgCompletionTime    float64 `json:"avg_completion_time_minutes"`
}

type HourlyTrend struct {
	Hour               string  `json:"hour"`
	OrderCount         int     `json:"order_count"`
	AvgPreparationTime float64 `json:"avg_preparation_time"`
}

type DailyVolume struct {
	Date              string  `json:"date"`
	OrderCount        int     `json:"order_count"`
	AvgCompletionTime float64 `json:"avg_completion_time"`
}

type BusyHour struct {
	Hour       string `json:"hour"`
	OrderCount int    `json:"order_count"`
}

type BusyDay struct {
	Day        string `json:"day"`
	OrderCount int    `json:"order_count"`
}

type PopularItem struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PopularItemsResponse carries the ranking plus the skip diagnostics, so one
// malformed historical row never hides the rest of the report.
type PopularItemsResponse struct {
	PopularItems         []PopularItem `json:"popular_items"`
	TotalOrdersProcessed int           `json:"total_orders_processed"`
	TotalItemsCounted    int           `json:"total_items_counted"`
	SkippedItems         int           `json:"skipped_items"`
}
