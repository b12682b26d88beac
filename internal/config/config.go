// Package config содержит логику чтения конфигурации сканера и стаба анализа.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ScannerConfig содержит параметры конфигурации клиента сканера.
type ScannerConfig struct {
	AnalyzerAddress string `env:"ANALYZER_ADDRESS"`
	HistoryPath     string `env:"HISTORY_PATH"`
	ScanSource      string `env:"SCAN_SOURCE"`
	ShowHistory     bool
}

// ParseScanner считывает конфигурацию сканера из флагов и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func ParseScanner() (*ScannerConfig, error) {
	cfg := &ScannerConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envAnalyzerAddress := cfg.AnalyzerAddress
	envHistoryPath := cfg.HistoryPath
	envScanSource := cfg.ScanSource

	flag.StringVar(&cfg.AnalyzerAddress, "r", "localhost:8080", "analysis service address")
	flag.StringVar(&cfg.HistoryPath, "d", "scanner.db", "scan history database path")
	flag.StringVar(&cfg.ScanSource, "f", "-", "barcode source file, - for stdin")
	flag.BoolVar(&cfg.ShowHistory, "history", false, "print recent scans and exit")

	flag.Parse()

	if envAnalyzerAddress != "" {
		cfg.AnalyzerAddress = envAnalyzerAddress
	}
	if envHistoryPath != "" {
		cfg.HistoryPath = envHistoryPath
	}
	if envScanSource != "" {
		cfg.ScanSource = envScanSource
	}

	return cfg, nil
}

// AnalyzerConfig содержит параметры конфигурации стаба сервиса анализа.
type AnalyzerConfig struct {
	RunAddress string  `env:"RUN_ADDRESS"`
	RateLimit  float64 `env:"RATE_LIMIT"`
}

// ParseAnalyzer считывает конфигурацию стаба из флагов и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func ParseAnalyzer() (*AnalyzerConfig, error) {
	cfg := &AnalyzerConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envRateLimit := cfg.RateLimit

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.Float64Var(&cfg.RateLimit, "l", 0, "requests per second limit, 0 disables limiting")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envRateLimit != 0 {
		cfg.RateLimit = envRateLimit
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
