// Package app связывает детектор, сессию сканирования и журнал в цикл работы сканера.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vasilis249/ingredient-scanner/internal/model"
	"github.com/vasilis249/ingredient-scanner/internal/scan"
)

// Detector описывает источник отсканированных штрихкодов.
type Detector interface {
	Next(ctx context.Context) (string, error)
}

// Session описывает контракт сессии сканирования, используемый приложением.
type Session interface {
	Submit(ctx context.Context, barcode string) bool
	Reset()
	Current() scan.Snapshot
	Updates() <-chan scan.Snapshot
}

// History описывает контракт журнала сканирований.
type History interface {
	SaveScan(ctx context.Context, rec model.ScanRecord) error
	RecentScans(ctx context.Context, limit int) ([]model.ScanRecord, error)
	Close() error
}

// App выполняет основной цикл сканера: штрихкод, анализ, отчёт, журнал.
type App struct {
	session  Session
	detector Detector
	history  History
	out      io.Writer
	logger   *zap.Logger
}

// NewApp создаёт приложение сканера с указанными зависимостями.
func NewApp(session Session, detector Detector, history History, out io.Writer, logger *zap.Logger) *App {
	return &App{
		session:  session,
		detector: detector,
		history:  history,
		out:      out,
		logger:   logger,
	}
}

// Run обрабатывает штрихкоды из детектора до исчерпания источника
// или отмены контекста. Ошибка записи в журнал не прерывает цикл.
func (a *App) Run(ctx context.Context) error {
	for {
		code, err := a.detector.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		a.session.Submit(ctx, code)

		snap, err := a.waitTerminal(ctx)
		if err != nil {
			return err
		}

		a.render(snap)
		a.record(ctx, snap)
		a.session.Reset()
	}
}

// waitTerminal ждёт ближайший снимок SUCCESS или FAILED, пропуская остальные.
func (a *App) waitTerminal(ctx context.Context) (scan.Snapshot, error) {
	for {
		select {
		case <-ctx.Done():
			return scan.Snapshot{}, ctx.Err()
		case snap := <-a.session.Updates():
			if snap.State == scan.StateSuccess || snap.State == scan.StateFailed {
				return snap, nil
			}
		}
	}
}

func (a *App) render(snap scan.Snapshot) {
	switch snap.State {
	case scan.StateSuccess:
		result := snap.Result
		fmt.Fprintf(a.out, "Product: %s [%s]\n", result.ProductName, snap.Barcode)
		fmt.Fprintf(a.out, "Score:   %s\n", result.OverallScore)
		if result.Summary != "" {
			fmt.Fprintf(a.out, "Summary: %s\n", result.Summary)
		}
		fmt.Fprintln(a.out, "Ingredients:")
		for _, ing := range result.Ingredients {
			fmt.Fprintf(a.out, "  - %s (%s): %s\n", ing.Name, ing.RiskLevel, ing.Details)
		}
		if result.Disclaimer != "" {
			fmt.Fprintf(a.out, "Disclaimer: %s\n", result.Disclaimer)
		}
	case scan.StateFailed:
		fmt.Fprintf(a.out, "Scan %s failed (%s): %s\n", snap.Barcode, snap.Err.Kind, snap.Err.Message)
	}
	fmt.Fprintln(a.out)
}

func (a *App) record(ctx context.Context, snap scan.Snapshot) {
	rec := model.ScanRecord{Barcode: snap.Barcode}

	switch snap.State {
	case scan.StateSuccess:
		rec.Status = model.ScanStatusSuccess
		rec.ProductName = snap.Result.ProductName
		rec.OverallScore = snap.Result.OverallScore
	case scan.StateFailed:
		rec.Status = model.ScanStatusFailed
		rec.ErrorKind = string(snap.Err.Kind)
		rec.ErrorMessage = snap.Err.Message
	default:
		return
	}

	if err := a.history.SaveScan(ctx, rec); err != nil {
		a.logger.Error("save scan error", zap.Error(err), zap.String("barcode", rec.Barcode))
	}
}

// PrintHistory выводит последние записи журнала сканирований, свежие первыми.
func PrintHistory(ctx context.Context, store History, out io.Writer, limit int) error {
	records, err := store.RecentScans(ctx, limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "History is empty.")
		return nil
	}

	for _, rec := range records {
		ts := rec.ScannedAt.Format("2006-01-02 15:04:05")
		switch rec.Status {
		case model.ScanStatusSuccess:
			fmt.Fprintf(out, "%s  %s  %s  %s (%s)\n", ts, rec.Barcode, rec.Status, rec.ProductName, rec.OverallScore)
		default:
			fmt.Fprintf(out, "%s  %s  %s  %s: %s\n", ts, rec.Barcode, rec.Status, rec.ErrorKind, rec.ErrorMessage)
		}
	}

	return nil
}
