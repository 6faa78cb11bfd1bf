package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"order-tracker/internal/backup"
	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders"
)

func main() {
	// Extract --mode; everything else goes to the selected mode's flag set.
	mode := "server"
	var modeArgs []string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--mode=") {
			mode = strings.TrimPrefix(arg, "--mode=")
		} else if arg == "--mode" && i+1 < len(args) {
			mode = args[i+1]
			i++
		} else {
			modeArgs = append(modeArgs, arg)
		}
	}

	ctx := context.Background()

	switch mode {
	case "server":
		mylog := mylogger.New("order-tracker", logLevel()).With("mode", "server")
		if err := orders.Execute(ctx, mylog, modeArgs); err != nil {
			os.Exit(1)
		}
	case "backup":
		mylog := mylogger.New("order-tracker", logLevel()).With("mode", "backup")
		if err := backup.Execute(ctx, mylog, modeArgs); err != nil {
			os.Exit(1)
		}
	default:
		fmt.Printf("Invalid mode: %s\n", mode)
		printUsage()
		os.Exit(1)
	}
}

func logLevel() string {
	if level := os.Getenv("APP_LOG_LEVEL"); level != "" {
		return level
	}
	return "INFO"
}

func printUsage() {
	fmt.Println("Usage: order-tracker [--mode=<mode>] [mode-specific-flags]")
	fmt.Println("Available modes:")
	fmt.Println("  server --config-path=config.yaml --port=3000   (default)")
	fmt.Println("  backup --config-path=config.yaml --output=backups")
}
