package ranking

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/senyabanana/rfq-service/internal/models"
)

type Badge string // Сравнительный бейдж предложения

const (
	BestValueBadge  Badge = "best_value"  // Лучшее соотношение цены, сроков и уверенности
	FastestBadge    Badge = "fastest"     // Минимальный срок изготовления
	LowestRiskBadge Badge = "lowest_risk" // Минимум флагов риска
)

// Веса составляющих итогового балла и штраф за каждый флаг риска.
const (
	priceWeight      = 0.55
	leadTimeWeight   = 0.30
	confidenceWeight = 0.10
	riskFlagPenalty  = 0.08
)

// RankedOffer - предложение с вычисленными полями для сравнительной таблицы.
type RankedOffer struct {
	Offer               models.Offer `json:"offer"`
	ProviderName        string       `json:"providerName"`
	TotalPriceValue     *float64     `json:"totalPriceValue,omitempty"`
	LeadTimeDaysAverage *float64     `json:"leadTimeDaysAverage,omitempty"`
	ConfidenceValue     *float64     `json:"confidenceValue,omitempty"`
	RiskFlagCount       int          `json:"riskFlagCount"`
	RankScore           float64      `json:"rankScore"`
	Badges              []Badge      `json:"badges"`
}

// RankOffers ранжирует предложения по одной заявке и раздаёт бейджи.
// Отозванные предложения исключаются. Функция чистая и никогда не
// возвращает ошибку: предложение без числовых данных просто получает
// нулевой балл и остаётся без бейджей.
func RankOffers(offers []models.Offer) []RankedOffer {
	ranked := make([]RankedOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Status == models.WithdrawnOffer {
			continue
		}
		ranked = append(ranked, normalizeOffer(offer))
	}

	minPrice := minValue(ranked, func(r RankedOffer) *float64 { return r.TotalPriceValue })
	minLeadTime := minValue(ranked, func(r RankedOffer) *float64 { return r.LeadTimeDaysAverage })

	for i := range ranked {
		priceScore := relativeScore(minPrice, ranked[i].TotalPriceValue)
		leadTimeScore := relativeScore(minLeadTime, ranked[i].LeadTimeDaysAverage)
		confidenceScore := 0.0
		if ranked[i].ConfidenceValue != nil {
			confidenceScore = *ranked[i].ConfidenceValue / 100
		}
		riskPenalty := float64(ranked[i].RiskFlagCount) * riskFlagPenalty
		ranked[i].RankScore = priceScore*priceWeight + leadTimeScore*leadTimeWeight + confidenceScore*confidenceWeight - riskPenalty
	}

	assignBadges(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		return better(
			candidate{score: ranked[i].RankScore, name: ranked[i].ProviderName, id: tieBreakID(ranked[i])},
			candidate{score: ranked[j].RankScore, name: ranked[j].ProviderName, id: tieBreakID(ranked[j])},
		)
	})
	return ranked
}

// normalizeOffer вычисляет отображаемые производные поля предложения.
func normalizeOffer(offer models.Offer) RankedOffer {
	r := RankedOffer{
		Offer:           offer,
		ProviderName:    providerName(offer),
		TotalPriceValue: ParseNumeric(offer.TotalPrice),
		Badges:          []Badge{},
	}

	switch {
	case offer.LeadTimeDaysMin != nil && offer.LeadTimeDaysMax != nil:
		avg := (*offer.LeadTimeDaysMin + *offer.LeadTimeDaysMax) / 2
		r.LeadTimeDaysAverage = &avg
	case offer.LeadTimeDaysMin != nil:
		r.LeadTimeDaysAverage = offer.LeadTimeDaysMin
	case offer.LeadTimeDaysMax != nil:
		r.LeadTimeDaysAverage = offer.LeadTimeDaysMax
	}

	if offer.ConfidenceScore != nil && !math.IsNaN(*offer.ConfidenceScore) && !math.IsInf(*offer.ConfidenceScore, 0) {
		conf := math.Round(*offer.ConfidenceScore)
		if conf < 0 {
			conf = 0
		}
		if conf > 100 {
			conf = 100
		}
		r.ConfidenceValue = &conf
	}

	for _, flag := range offer.QualityRiskFlags {
		if strings.TrimSpace(flag) != "" {
			r.RiskFlagCount++
		}
	}
	return r
}

// assignBadges раздаёт каждый из трёх бейджей не более чем одному предложению.
// Ничьи разрешает общий компаратор better.
func assignBadges(ranked []RankedOffer) {
	bestValue, fastest, lowestRisk := -1, -1, -1

	for i := range ranked {
		if hasRankInputs(ranked[i]) {
			c := candidate{score: ranked[i].RankScore, name: ranked[i].ProviderName, id: tieBreakID(ranked[i])}
			if bestValue < 0 || better(c, candidate{score: ranked[bestValue].RankScore, name: ranked[bestValue].ProviderName, id: tieBreakID(ranked[bestValue])}) {
				bestValue = i
			}
		}

		if ranked[i].LeadTimeDaysAverage != nil {
			c := candidate{score: -*ranked[i].LeadTimeDaysAverage, name: ranked[i].ProviderName, id: tieBreakID(ranked[i])}
			if fastest < 0 || better(c, candidate{score: -*ranked[fastest].LeadTimeDaysAverage, name: ranked[fastest].ProviderName, id: tieBreakID(ranked[fastest])}) {
				fastest = i
			}
		}

		if hasRankInputs(ranked[i]) || ranked[i].RiskFlagCount > 0 {
			c := candidate{score: -float64(ranked[i].RiskFlagCount), secondary: confidenceOrMinusOne(ranked[i]), name: ranked[i].ProviderName, id: tieBreakID(ranked[i])}
			if lowestRisk < 0 || better(c, candidate{score: -float64(ranked[lowestRisk].RiskFlagCount), secondary: confidenceOrMinusOne(ranked[lowestRisk]), name: ranked[lowestRisk].ProviderName, id: tieBreakID(ranked[lowestRisk])}) {
				lowestRisk = i
			}
		}
	}

	if bestValue >= 0 {
		ranked[bestValue].Badges = append(ranked[bestValue].Badges, BestValueBadge)
	}
	if fastest >= 0 {
		ranked[fastest].Badges = append(ranked[fastest].Badges, FastestBadge)
	}
	if lowestRisk >= 0 {
		ranked[lowestRisk].Badges = append(ranked[lowestRisk].Badges, LowestRiskBadge)
	}
}

// hasRankInputs сообщает, есть ли у предложения хоть одна метрика для ранжирования.
func hasRankInputs(r RankedOffer) bool {
	return r.TotalPriceValue != nil || r.LeadTimeDaysAverage != nil || r.ConfidenceValue != nil
}

// confidenceOrMinusOne возвращает уверенность предложения, трактуя отсутствие как -1.
func confidenceOrMinusOne(r RankedOffer) float64 {
	if r.ConfidenceValue == nil {
		return -1
	}
	return *r.ConfidenceValue
}

// tieBreakID возвращает идентификатор для разрешения ничьих:
// идентификатор поставщика, а для внешних предложений - идентификатор записи.
func tieBreakID(r RankedOffer) string {
	if r.Offer.ProviderID != nil && *r.Offer.ProviderID != "" {
		return *r.Offer.ProviderID
	}
	return r.Offer.ID
}

// providerName возвращает отображаемое имя поставщика с запасными вариантами.
func providerName(offer models.Offer) string {
	if offer.ProviderName != nil && strings.TrimSpace(*offer.ProviderName) != "" {
		return strings.TrimSpace(*offer.ProviderName)
	}
	if offer.ProviderID != nil && strings.TrimSpace(*offer.ProviderID) != "" {
		return strings.TrimSpace(*offer.ProviderID)
	}
	return "Provider"
}

// relativeScore вычисляет отношение минимума к значению предложения.
// Отсутствующие и некорректные значения дают 0, совпадение нулей - 1.
func relativeScore(min, value *float64) float64 {
	if min == nil || value == nil {
		return 0
	}
	if *min == 0 {
		if *value == 0 {
			return 1
		}
		return 0
	}
	if *value == 0 {
		return 0
	}
	score := *min / *value
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// minValue находит минимум метрики по всем предложениям, пропуская отсутствующие.
func minValue(ranked []RankedOffer, metric func(RankedOffer) *float64) *float64 {
	var min *float64
	for _, r := range ranked {
		v := metric(r)
		if v == nil {
			continue
		}
		if min == nil || *v < *min {
			value := *v
			min = &value
		}
	}
	return min
}

// ParseNumeric разбирает число, которое могло прийти числом, строкой или
// отсутствовать. Всё, что не разбирается в конечное число, трактуется
// как отсутствие значения.
func ParseNumeric(value interface{}) *float64 {
	var parsed float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		parsed = f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		parsed = f
	default:
		return nil
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}
