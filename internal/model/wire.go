package model

import (
	"encoding/json"
	"fmt"
)

// Проводные структуры используют указатели, чтобы отличать отсутствующее
// поле от пустого значения. Ответ сервиса приходит в snake_case.
type wireIngredient struct {
	ID        *string  `json:"id"`
	Name      *string  `json:"name"`
	Function  *string  `json:"function"`
	Origin    *string  `json:"origin"`
	Risk      *string  `json:"risk"`
	RiskLevel *string  `json:"risk_level"`
	Details   *string  `json:"details"`
	Concerns  []string `json:"concerns"`
}

type wireResult struct {
	ProductName  *string          `json:"product_name"`
	Barcode      *string          `json:"barcode"`
	OverallScore *string          `json:"overall_score"`
	Summary      *string          `json:"overall_summary"`
	Disclaimer   *string          `json:"disclaimer"`
	Ingredients  []wireIngredient `json:"ingredients"`
}

// DecodeAnalysisResult строго декодирует тело ответа сервиса анализа.
// Отсутствие обязательного поля или неверный тип значения считаются ошибкой,
// неизвестные поля игнорируются. Частично заполненный результат не возвращается
// никогда: либо полный AnalysisResult, либо ошибка.
func DecodeAnalysisResult(data []byte) (*AnalysisResult, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal analysis result: %w", err)
	}

	if w.ProductName == nil {
		return nil, fmt.Errorf("missing required field %q", "product_name")
	}
	if w.OverallScore == nil {
		return nil, fmt.Errorf("missing required field %q", "overall_score")
	}
	if w.Ingredients == nil {
		return nil, fmt.Errorf("missing required field %q", "ingredients")
	}

	res := &AnalysisResult{
		ProductName:  *w.ProductName,
		OverallScore: *w.OverallScore,
		Ingredients:  make([]IngredientEntry, 0, len(w.Ingredients)),
	}
	if w.Barcode != nil {
		res.Barcode = *w.Barcode
	}
	if w.Summary != nil {
		res.Summary = *w.Summary
	}
	if w.Disclaimer != nil {
		res.Disclaimer = *w.Disclaimer
	}

	for i, wi := range w.Ingredients {
		entry, err := wi.toEntry()
		if err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", i, err)
		}
		res.Ingredients = append(res.Ingredients, entry)
	}

	return res, nil
}

func (w wireIngredient) toEntry() (IngredientEntry, error) {
	if w.Name == nil {
		return IngredientEntry{}, fmt.Errorf("missing required field %q", "name")
	}

	// Каноничным ключом служит risk, но принимается и risk_level.
	risk := w.Risk
	if risk == nil {
		risk = w.RiskLevel
	}
	if risk == nil {
		return IngredientEntry{}, fmt.Errorf("missing required field %q", "risk")
	}

	if w.Details == nil {
		return IngredientEntry{}, fmt.Errorf("missing required field %q", "details")
	}

	e := IngredientEntry{
		Name:      *w.Name,
		RiskLevel: ParseRiskLevel(*risk),
		Details:   *w.Details,
	}

	// Идентификатор нужен слою отображения; если сервис его не прислал,
	// используется имя ингредиента.
	if w.ID != nil && *w.ID != "" {
		e.ID = *w.ID
	} else {
		e.ID = e.Name
	}

	if w.Function != nil {
		e.Function = *w.Function
	}
	if w.Origin != nil {
		e.Origin = *w.Origin
	}
	if len(w.Concerns) > 0 {
		e.Concerns = w.Concerns
	}

	return e, nil
}
