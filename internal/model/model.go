// Package model содержит доменные сущности клиента сканера ингредиентов.
package model

import (
	"strings"
	"time"
)

// RiskLevel описывает категорию риска, присвоенную ингредиенту сервисом анализа.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel приводит строку из проводного формата к RiskLevel.
// Нераспознанные значения трактуются как RiskUnknown: сервис помечает так
// ингредиенты, отсутствующие в его базе знаний.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// IngredientEntry описывает один ингредиент из отчёта сервиса анализа.
// Создаётся только при декодировании ответа сервиса.
type IngredientEntry struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Function  string    `json:"function,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	RiskLevel RiskLevel `json:"risk"`
	Details   string    `json:"details"`
	Concerns  []string  `json:"concerns,omitempty"`
}

// AnalysisResult описывает отчёт сервиса анализа по одному штрихкоду.
// Порядок ингредиентов сохраняется таким, каким его вернул сервис.
type AnalysisResult struct {
	ProductName  string            `json:"product_name"`
	Barcode      string            `json:"barcode,omitempty"`
	OverallScore string            `json:"overall_score"`
	Summary      string            `json:"overall_summary,omitempty"`
	Disclaimer   string            `json:"disclaimer,omitempty"`
	Ingredients  []IngredientEntry `json:"ingredients"`
}

// ScanStatus описывает итог завершённого сканирования в журнале.
type ScanStatus string

// Возможные итоги сканирования.
const (
	ScanStatusSuccess ScanStatus = "SUCCESS"
	ScanStatusFailed  ScanStatus = "FAILED"
)

// ScanRecord описывает одну запись локального журнала сканирований.
// Для неуспешных сканирований заполняются ErrorKind и ErrorMessage,
// для успешных ProductName и OverallScore.
type ScanRecord struct {
	ID           string
	Barcode      string
	Status       ScanStatus
	ProductName  string
	OverallScore string
	ErrorKind    string
	ErrorMessage string
	ScannedAt    time.Time
}
