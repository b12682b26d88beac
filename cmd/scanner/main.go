// Package main запускает консольный клиент сканера ингредиентов.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vasilis249/ingredient-scanner/internal/analysis"
	"github.com/vasilis249/ingredient-scanner/internal/app"
	"github.com/vasilis249/ingredient-scanner/internal/config"
	"github.com/vasilis249/ingredient-scanner/internal/detector"
	"github.com/vasilis249/ingredient-scanner/internal/history"
	"github.com/vasilis249/ingredient-scanner/internal/scan"
)

// historyLimit задаёт число записей, выводимых в режиме -history.
const historyLimit = 20

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.ParseScanner()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	store, err := history.NewSQLiteStore(cfg.HistoryPath)
	if err != nil {
		sugar.Fatalw("history initialization error", "error", err.Error())
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ShowHistory {
		if err := app.PrintHistory(ctx, store, os.Stdout, historyLimit); err != nil {
			sugar.Fatalw("history error", "error", err.Error())
		}
		return
	}

	source, closeSource, err := openSource(cfg.ScanSource)
	if err != nil {
		sugar.Fatalw("scan source error", "error", err.Error())
	}
	defer closeSource()

	client := analysis.NewClient(cfg.AnalyzerAddress)
	session := scan.NewSession(client, logger)
	lineDetector := detector.NewLineDetector(source, logger)

	a := app.NewApp(session, lineDetector, store, os.Stdout, logger)

	sugar.Infow("starting scanner", "analyzer", cfg.AnalyzerAddress, "source", cfg.ScanSource)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		sugar.Fatalw("scanner terminated with error", "error", err.Error())
	}

	sugar.Info("scanner stopped")
}

func openSource(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open scan source: %w", err)
	}
	return f, f.Close, nil
}
