// Command batchrun runs one supervised batch against the in-process fabric and prints
// the resulting cost report as CSV on stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fabric-ledger/internal/app"
	"fabric-ledger/internal/shared/configs"
	"fabric-ledger/internal/supervisors"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	flagSet := pflag.NewFlagSet("batchrun", pflag.ContinueOnError)
	configPath := flagSet.StringP("config", "c", "./configs/configs.yml", "path to the YAML config file")
	function := flagSet.StringP("function", "f", "", "function to invoke (default: fabric.function from config)")
	count := flagSet.IntP("count", "n", 0, "number of invocations (default: supervisor.default_invocations)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		return 2
	}

	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *function == "" {
		*function = cfg.Fabric.Function
	}
	if *count == 0 {
		*count = cfg.Supervisor.DefaultInvocations
	}

	// stdout carries the report only
	application, err := app.New(cfg, app.WithLogOutput(os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		return 1
	}
	application.StartBackground()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := application.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown failed: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := application.Supervisor().RunBatch(ctx, supervisors.BatchRequest{
		Function: *function,
		Count:    *count,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Batch failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "window %s (epoch %d): %d/%d observed, %d failed invocations\n",
		result.WindowID, result.Epoch, len(result.Ledger.ObservedCounts), len(result.Ledger.Expected), len(result.Failures))
	if result.ReportID != "" {
		fmt.Fprintf(os.Stderr, "report persisted as %s\n", result.ReportID)
	}

	if err := application.Accountant().Serialize(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		return 1
	}
	return 0
}
