package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/app/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	mylog            mylogger.Logger
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, mylog mylogger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		mylog:            mylog,
	}
}

func (ah *AnalyticsHandler) HourlyTrends() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		trends, err := ah.analyticsService.HourlyTrends(ctx)
		if err != nil {
			ah.fail(w, "failed to compute hourly trends", err)
			return
		}
		jsonResponse(w, http.StatusOK, trends)
	}
}

func (ah *AnalyticsHandler) DailyVolume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		volume, err := ah.analyticsService.DailyVolume(ctx)
		if err != nil {
			ah.fail(w, "failed to compute daily volume", err)
			return
		}
		jsonResponse(w, http.StatusOK, volume)
	}
}

func (ah *AnalyticsHandler) BusyHours() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		busy, err := ah.analyticsService.BusyHours(ctx)
		if err != nil {
			ah.fail(w, "failed to compute busy hours", err)
			return
		}
		jsonResponse(w, http.StatusOK, busy)
	}
}

func (ah *AnalyticsHandler) BusyDays() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		busy, err := ah.analyticsService.BusyDays(ctx)
		if err != nil {
			ah.fail(w, "failed to compute busy days", err)
			return
		}
		jsonResponse(w, http.StatusOK, busy)
	}
}

func (ah *AnalyticsHandler) PopularItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		resp, err := ah.analyticsService.PopularItems(ctx)
		if err != nil {
			ah.fail(w, "failed to compute popular items", err)
			return
		}
		jsonResponse(w, http.StatusOK, resp)
	}
}

func (ah *AnalyticsHandler) fail(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, core.ErrDBConn) {
		jsonError(w, http.StatusInternalServerError, KindPersistence, err)
		return
	}
	ah.mylog.Action("analytics_handler_failed").Error(msg, err)
	jsonError(w, http.StatusInternalServerError, KindInternal, errors.New(msg))
}
