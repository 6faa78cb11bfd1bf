package orders

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/api/http"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/xpkg/clock"
	"order-tracker/internal/xpkg/config"

	"golang.org/x/sync/errgroup"
)

type params struct {
	orderParams *core.OrderParams
	configPath  string
	cfg         *config.Config
}

// Execute starts the order-tracking server and blocks until a shutdown
// signal arrives or the server fails.
func Execute(ctx context.Context, mylog mylogger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := parseParams(args)
	if err != nil {
		if errors.Is(err, core.ErrHelp) {
			return nil
		}
		mylog.Action("command_parse_failed").Error("Invalid command received", err)
		return err
	}
	if err = validateParams(params); err != nil {
		mylog.Action("command_validation_failed").Error("Invalid command received", err)
		return err
	}

	clk, err := clock.New(params.cfg.App.Timezone)
	if err != nil {
		mylog.Action("timezone_failed").Error("Invalid timezone in config", err)
		return err
	}

	server := http.NewServer(newCtx, context.Background(), params.cfg, params.orderParams, clk, mylog)

	g, gctx := errgroup.WithContext(newCtx)
	g.Go(func() error {
		return server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mylog.Action("order_service_failed").Error("Server failed unexpectedly", err)
		return err
	}

	mylog.Action("server_stopped").Info("Server exited normally")
	return nil
}

func parseParams(args []string) (*params, error) {
	fs := flag.NewFlagSet("order-tracker", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	port := fs.Int("port", 0, "Port to run the service (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, errors.New("cannot parse arguments")
	}

	if *showHelp {
		fs.Usage()
		return nil, core.ErrHelp
	}

	return &params{
		orderParams: &core.OrderParams{
			Port: *port,
		},
		configPath: *configPath,
	}, nil
}

func validateParams(params *params) error {
	cfg, err := config.LoadConfig(params.configPath)
	if err != nil {
		return err
	}
	params.cfg = cfg

	if params.orderParams.Port == 0 {
		params.orderParams.Port = cfg.Server.Port
	}
	if params.orderParams.Port <= 0 || params.orderParams.Port >= 65536 {
		return fmt.Errorf("port must be in [1: 65,535]: %d", params.orderParams.Port)
	}

	return nil
}
