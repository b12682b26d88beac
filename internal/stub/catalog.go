package stub

import (
	"fmt"
	"strings"

	"github.com/vasilis249/ingredient-scanner/internal/model"
)

// disclaimerText добавляется к каждому отчёту анализа.
const disclaimerText = "This analysis is informational only and not medical advice."

type product struct {
	name        string
	ingredients []string
}

type ingredientInfo struct {
	function string
	origin   string
	risk     model.RiskLevel
	concerns []string
}

// Каталог товаров стаба. Все штрихкоды несут корректную контрольную цифру.
var productCatalog = map[string]product{
	"4005900889089": {
		name: "Gentle Daily Moisturizer",
		ingredients: []string{
			"AQUA",
			"GLYCERIN",
			"CETYL ALCOHOL",
			"PARFUM",
			"PHENOXYETHANOL",
		},
	},
	"3606000430150": {
		name: "SPF 50 Face Sunscreen",
		ingredients: []string{
			"AQUA",
			"C12-15 ALKYL BENZOATE",
			"ETHYLHEXYL METHOXYCINNAMATE",
			"TITANIUM DIOXIDE",
			"PARFUM",
		},
	},
	"5012000000008": {
		name: "Soothing Night Cream",
		ingredients: []string{
			"AQUA",
			"CAPRYLIC/CAPRIC TRIGLYCERIDE",
			"NIACINAMIDE",
			"PARFUM",
		},
	},
}

// Справочник ингредиентов по нормализованному имени INCI.
var ingredientDB = map[string]ingredientInfo{
	"AQUA": {
		function: "solvent",
		origin:   "mineral",
		risk:     model.RiskLow,
	},
	"GLYCERIN": {
		function: "humectant",
		origin:   "plant-based",
		risk:     model.RiskLow,
	},
	"CETYL ALCOHOL": {
		function: "emollient",
		origin:   "plant-based",
		risk:     model.RiskLow,
		concerns: []string{"generally well-tolerated fatty alcohol"},
	},
	"PARFUM": {
		function: "fragrance",
		origin:   "synthetic",
		risk:     model.RiskMedium,
		concerns: []string{"fragrance allergens", "potential irritation"},
	},
	"PHENOXYETHANOL": {
		function: "preservative",
		origin:   "synthetic",
		risk:     model.RiskMedium,
		concerns: []string{"may irritate sensitive skin at higher levels"},
	},
	"C12-15 ALKYL BENZOATE": {
		function: "emollient",
		origin:   "synthetic",
		risk:     model.RiskLow,
	},
	"ETHYLHEXYL METHOXYCINNAMATE": {
		function: "UV filter",
		origin:   "synthetic",
		risk:     model.RiskMedium,
		concerns: []string{"possible photoallergy in sensitive individuals"},
	},
	"TITANIUM DIOXIDE": {
		function: "UV filter",
		origin:   "mineral",
		risk:     model.RiskLow,
		concerns: []string{"avoid inhalation of loose powders"},
	},
	"CAPRYLIC/CAPRIC TRIGLYCERIDE": {
		function: "emollient",
		origin:   "plant-based",
		risk:     model.RiskLow,
	},
	"NIACINAMIDE": {
		function: "skin conditioning",
		origin:   "synthetic",
		risk:     model.RiskLow,
		concerns: []string{"rare flushing in very high concentrations"},
	},
}

func normalizeINCI(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func lookupIngredient(inci string) model.IngredientEntry {
	normalized := normalizeINCI(inci)

	info, ok := ingredientDB[normalized]
	if !ok {
		info = ingredientInfo{
			function: "unknown",
			risk:     model.RiskUnknown,
			concerns: []string{"Not found in knowledge base"},
		}
	}

	return model.IngredientEntry{
		Name:      normalized,
		Function:  info.function,
		Origin:    info.origin,
		RiskLevel: info.risk,
		Details:   ingredientSummary(normalized, info),
		Concerns:  info.concerns,
	}
}

func ingredientSummary(name string, info ingredientInfo) string {
	concernsText := "No notable concerns recorded."
	if len(info.concerns) > 0 {
		concernsText = strings.Join(info.concerns, "; ")
	}
	return fmt.Sprintf("%s is labeled %s risk. %s", name, info.risk, concernsText)
}

// overallScore выводит буквенную оценку из среднего веса рисков ингредиентов.
func overallScore(ingredients []model.IngredientEntry) (string, string) {
	if len(ingredients) == 0 {
		return "B", "No ingredients provided for scoring."
	}

	weights := map[model.RiskLevel]int{
		model.RiskHigh:    3,
		model.RiskMedium:  2,
		model.RiskLow:     1,
		model.RiskUnknown: 2,
	}

	total := 0
	for _, ing := range ingredients {
		weight, ok := weights[ing.RiskLevel]
		if !ok {
			weight = 2
		}
		total += weight
	}

	avg := float64(total) / float64(len(ingredients))
	switch {
	case avg >= 2.5:
		return "C", "Contains ingredients that may warrant caution for sensitive skin."
	case avg >= 1.8:
		return "B", "Generally moderate profile with some potential irritants."
	default:
		return "A", "Low-risk profile based on known ingredients."
	}
}

func buildResult(barcode string, p product) model.AnalysisResult {
	entries := make([]model.IngredientEntry, 0, len(p.ingredients))
	for _, inci := range p.ingredients {
		entries = append(entries, lookupIngredient(inci))
	}

	score, summary := overallScore(entries)

	return model.AnalysisResult{
		ProductName:  p.name,
		Barcode:      barcode,
		OverallScore: score,
		Summary:      summary,
		Disclaimer:   disclaimerText,
		Ingredients:  entries,
	}
}
