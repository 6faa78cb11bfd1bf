package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/api/http/handle"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/app/services"
	"order-tracker/internal/xpkg/clock"
	"order-tracker/internal/xpkg/config"

	database "order-tracker/internal/orders/adapter/db"
	xdb "order-tracker/internal/xpkg/db"
)

var ErrServerClosed = errors.New("server closed")

type Server struct {
	mux         *http.ServeMux
	cfg         *config.Config
	srv         *http.Server
	orderParams *core.OrderParams
	clk         *clock.Clock
	mylog       mylogger.Logger
	db          core.IDB
	ctx         context.Context
	appCtx      context.Context
	mu          sync.Mutex
}

func NewServer(ctx, appCtx context.Context, cfg *config.Config, orderParams *core.OrderParams, clk *clock.Clock, mylog mylogger.Logger) *Server {
	return &Server{
		ctx:         ctx,
		appCtx:      appCtx,
		cfg:         cfg,
		orderParams: orderParams,
		clk:         clk,
		mylog:       mylog,
		mux:         http.NewServeMux(),
	}
}

// Run connects the database, provisions the schema, wires the routes and
// listens until the context is cancelled or the listener fails.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	if err := s.initializeDatabase(); err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return err
	}
	mylog.Action("db_connected").Info("Successful database connection")

	if err := database.EnsureSchema(s.appCtx, s.db); err != nil {
		mylog.Action("schema_failed").Error("Failed to provision schema", err)
		return err
	}

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.orderParams.Port),
		Handler:      withCORS(withRequestID(s.mux, s.mylog)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.mu.Unlock()

	mylog.Info("server is running", "port", s.orderParams.Port, "timezone", s.cfg.App.Timezone)
	return s.startHTTPServer()
}

// Stop shuts the listener down gracefully and releases the pool. Every exit
// path of the process goes through here, so the handle release is unconditional.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Action("db_close_failed").Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Action("db_closed").Info("Database closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) initializeDatabase() error {
	db, err := xdb.Start(s.appCtx, s.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

// Configure wires repositories, services and routes. Each request maps to
// exactly one lifecycle or analytics operation.
func (s *Server) Configure() {
	orderRepo := database.NewOrderRepo(s.ctx, s.db, s.clk)
	analyticsRepo := database.NewAnalyticsRepo(s.ctx, s.db)

	orderService := services.NewOrderService(s.ctx, orderRepo, s.clk, s.mylog)
	analyticsService := services.NewAnalyticsService(s.ctx, analyticsRepo, s.mylog)

	orderHandler := handle.NewOrderHandler(orderService, s.mylog)
	completedHandler := handle.NewCompletedHandler(orderService, s.mylog)
	analyticsHandler := handle.NewAnalyticsHandler(analyticsService, s.mylog)

	s.mux.Handle("POST /orders", orderHandler.Create())
	s.mux.Handle("GET /orders", orderHandler.List())
	s.mux.Handle("PATCH /orders/{id}", orderHandler.Complete())
	s.mux.Handle("DELETE /orders/{id}", orderHandler.Delete())

	s.mux.Handle("GET /orders/completed/today", completedHandler.SummaryToday())
	s.mux.Handle("GET /orders/completed/total", completedHandler.SummaryTotal())
	s.mux.Handle("GET /orders/completed/today/list", completedHandler.ListToday())
	s.mux.Handle("GET /orders/completed/all", completedHandler.ListAll())
	s.mux.Handle("DELETE /orders/reset-completed", completedHandler.ResetCompleted())
	s.mux.Handle("DELETE /orders/reset-all", completedHandler.ResetAll())

	s.mux.Handle("GET /analytics/hourly-trends", analyticsHandler.HourlyTrends())
	s.mux.Handle("GET /analytics/daily-volume", analyticsHandler.DailyVolume())
	s.mux.Handle("GET /analytics/busy-hours", analyticsHandler.BusyHours())
	s.mux.Handle("GET /analytics/busy-days", analyticsHandler.BusyDays())
	s.mux.Handle("GET /analytics/popular-items", analyticsHandler.PopularItems())
}
