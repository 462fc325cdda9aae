package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dcf-screener/internal/logger"
	"dcf-screener/internal/report"
	"dcf-screener/internal/store"
	"dcf-screener/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	tickersFlag := flag.String("tickers", "", "comma-separated tickers, overrides the configured universe")
	csvFlag := flag.String("csv", "", "export path for CSV results, overrides output.csv_path")
	flag.Parse()

	if err := run(*configPath, *tickersFlag, *csvFlag); err != nil {
		fmt.Fprintf(os.Stderr, "screener: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, tickersFlag, csvFlag string) error {
	if err := initializeSystem(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		if err := trace.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "Tracer shutdown failed", "error", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Warn(ctx, "Shutting down...")
		cancel()
	}()

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	provider := initializeProvider(ctx, cfg)
	scr := initializeScreener(cfg, provider)

	tickers, err := resolveTickers(ctx, cfg, tickersFlag)
	if err != nil {
		return err
	}

	results, err := scr.Run(ctx, tickers)
	if err != nil {
		return err
	}

	report.Render(os.Stdout, results, report.Options{
		SortBy:          cfg.Output.SortBy,
		ShowColors:      cfg.Output.ShowColors,
		OnlyUndervalued: cfg.Output.OnlyUndervalued,
		MaxResults:      cfg.Output.MaxResults,
		Focus:           cfg.Output.Focus,
	})

	csvPath := cfg.Output.CSVPath
	if csvFlag != "" {
		csvPath = csvFlag
	}
	if csvPath != "" {
		if err := report.WriteCSV(csvPath, results); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		logger.Info(ctx, "CSV written", "path", csvPath)
	}

	return nil
}

// resolveTickers prefers the -tickers flag over the configured universe.
func resolveTickers(ctx context.Context, cfg *store.Config, flagVal string) ([]string, error) {
	if flagVal != "" {
		var tickers []string
		for _, t := range strings.Split(flagVal, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tickers = append(tickers, strings.ToUpper(t))
			}
		}
		if len(tickers) == 0 {
			return nil, fmt.Errorf("no valid tickers in -tickers flag")
		}
		return tickers, nil
	}
	return initializeUniverse(ctx, cfg).Tickers(ctx)
}
