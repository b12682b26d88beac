// Package detector извлекает штрихкоды из построчного источника сканирования.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vasilis249/ingredient-scanner/internal/validation"
)

type scanEvent struct {
	code string
	err  error
}

// LineDetector читает штрихкоды построчно из io.Reader.
// После выдачи кода чтение приостанавливается до следующего вызова Next,
// поэтому одно физическое сканирование даёт ровно одно событие.
type LineDetector struct {
	r      io.Reader
	logger *zap.Logger
	once   sync.Once
	events chan scanEvent
}

// NewLineDetector создаёт детектор поверх указанного источника строк.
func NewLineDetector(r io.Reader, logger *zap.Logger) *LineDetector {
	return &LineDetector{
		r:      r,
		logger: logger,
		events: make(chan scanEvent),
	}
}

// Next возвращает следующий валидный штрихкод из источника.
// Пустые строки и строки, начинающиеся с «#», пропускаются. Строки с неверной
// контрольной цифрой отбрасываются с предупреждением в логе.
// По исчерпании источника возвращается io.EOF.
func (d *LineDetector) Next(ctx context.Context) (string, error) {
	d.once.Do(d.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ev, ok := <-d.events:
		if !ok {
			return "", io.EOF
		}
		return ev.code, ev.err
	}
}

func (d *LineDetector) start() {
	go func() {
		defer close(d.events)

		scanner := bufio.NewScanner(d.r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if !validation.IsValidBarcode(line) {
				d.logger.Warn("invalid barcode skipped", zap.String("line", line))
				continue
			}
			d.events <- scanEvent{code: line}
		}
		if err := scanner.Err(); err != nil {
			d.events <- scanEvent{err: fmt.Errorf("read scan source: %w", err)}
		}
	}()
}
