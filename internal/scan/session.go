// Package scan реализует сессию сканирования со строгим конечным автоматом.
package scan

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vasilis249/ingredient-scanner/internal/analysis"
	"github.com/vasilis249/ingredient-scanner/internal/model"
)

// State описывает состояние сессии сканирования.
type State string

// Возможные состояния сессии.
const (
	StateIdle    State = "IDLE"
	StateLoading State = "LOADING"
	StateSuccess State = "SUCCESS"
	StateFailed  State = "FAILED"
)

// updatesBuffer задаёт ёмкость канала обновлений.
const updatesBuffer = 16

// Snapshot фиксирует состояние сессии в момент перехода.
// Result заполнен только в состоянии SUCCESS, Err только в FAILED.
type Snapshot struct {
	State   State
	Barcode string
	Result  *model.AnalysisResult
	Err     *analysis.RequestError
}

// Analyzer описывает контракт получения анализа, используемый сессией.
type Analyzer interface {
	FetchAnalysis(ctx context.Context, barcode string) (*model.AnalysisResult, error)
}

// Session ведёт не более одного запроса анализа одновременно.
// Переходы публикуются в канал Updates в порядке их совершения.
type Session struct {
	analyzer Analyzer
	logger   *zap.Logger

	mu         sync.Mutex
	current    Snapshot
	generation uint64
	updates    chan Snapshot
}

// NewSession создаёт сессию сканирования в состоянии IDLE.
func NewSession(analyzer Analyzer, logger *zap.Logger) *Session {
	return &Session{
		analyzer: analyzer,
		logger:   logger,
		current:  Snapshot{State: StateIdle},
		updates:  make(chan Snapshot, updatesBuffer),
	}
}

// Submit начинает загрузку анализа для указанного штрихкода.
// Переход в LOADING совершается до возврата из метода. Пока сессия в LOADING,
// повторные вызовы игнорируются и возвращают false.
func (s *Session) Submit(ctx context.Context, barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.State == StateLoading {
		s.logger.Debug("submit ignored, request in flight",
			zap.String("barcode", barcode),
			zap.String("active_barcode", s.current.Barcode))
		return false
	}

	if strings.TrimSpace(barcode) == "" {
		s.logger.Warn("empty barcode rejected")
		s.setLocked(Snapshot{
			State:   StateFailed,
			Barcode: barcode,
			Err: &analysis.RequestError{
				Kind:    analysis.ErrorKindInvalidEndpoint,
				Message: "barcode must not be empty",
			},
		})
		return true
	}

	s.generation++
	gen := s.generation
	s.setLocked(Snapshot{State: StateLoading, Barcode: barcode})

	go func() {
		result, err := s.analyzer.FetchAnalysis(ctx, barcode)
		s.complete(gen, barcode, result, err)
	}()

	return true
}

// Reset безусловно возвращает сессию в IDLE.
// Незавершённый запрос после этого считается устаревшим, его итог отбрасывается.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.setLocked(Snapshot{State: StateIdle})
}

// Current возвращает снимок текущего состояния сессии.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Updates возвращает канал переходов состояния.
// При переполнении буфера отбрасываются самые старые снимки.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

func (s *Session) complete(gen uint64, barcode string, result *model.AnalysisResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("stale completion dropped",
			zap.String("barcode", barcode),
			zap.Uint64("generation", gen))
		return
	}

	if err != nil {
		reqErr := analysis.AsRequestError(err)
		s.logger.Warn("analysis failed",
			zap.String("barcode", barcode),
			zap.String("kind", string(reqErr.Kind)),
			zap.Error(reqErr))
		s.setLocked(Snapshot{State: StateFailed, Barcode: barcode, Err: reqErr})
		return
	}

	s.logger.Info("analysis completed",
		zap.String("barcode", barcode),
		zap.String("product", result.ProductName))
	s.setLocked(Snapshot{State: StateSuccess, Barcode: barcode, Result: result})
}

// setLocked записывает состояние и публикует снимок. Вызывается только под mu.
func (s *Session) setLocked(snap Snapshot) {
	s.current = snap
	select {
	case s.updates <- snap:
	default:
		// Писатель единственный и держит mu, после вычитки слот свободен.
		select {
		case <-s.updates:
		default:
		}
		s.updates <- snap
	}
}
