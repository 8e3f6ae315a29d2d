package ranking

import "github.com/senyabanana/rfq-service/internal/models"

// Вклад каждого заполненного поля в балл полноты предложения.
const (
	totalPricePoints = 50
	unitPricePoints  = 15
	leadTimePoints   = 35
)

// Completeness - независимая оценка полноты данных одного предложения.
// Используется администраторами для разбора входящих, ни с чем не сравнивается.
type Completeness struct {
	Score        int      `json:"score"`
	Missing      []string `json:"missing"`
	IsActionable bool     `json:"isActionable"`
}

// ScoreCompleteness оценивает полноту данных предложения по шкале 0-100.
// Предложение пригодно к работе, если указана общая цена или цена за единицу.
func ScoreCompleteness(offer models.Offer) Completeness {
	hasTotalPrice := ParseNumeric(offer.TotalPrice) != nil
	hasUnitPrice := ParseNumeric(offer.UnitPrice) != nil
	hasLeadTime := offer.LeadTimeDaysMin != nil || offer.LeadTimeDaysMax != nil

	result := Completeness{
		Missing:      []string{},
		IsActionable: hasTotalPrice || hasUnitPrice,
	}

	if hasTotalPrice {
		result.Score += totalPricePoints
	} else {
		result.Missing = append(result.Missing, "Missing total price")
	}
	if hasUnitPrice {
		result.Score += unitPricePoints
	} else {
		result.Missing = append(result.Missing, "Missing unit price")
	}
	if hasLeadTime {
		result.Score += leadTimePoints
	} else {
		result.Missing = append(result.Missing, "Missing lead time")
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result
}
