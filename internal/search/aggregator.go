package search

import (
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
)

type (
	SearchStatus      string // Агрегированное состояние поиска поставщиков
	RecommendedAction string // Рекомендуемое следующее действие
)

const (
	NoDestinationsStatus   SearchStatus = "no_destinations"   // Рассылок нет вовсе
	ResultsAvailableStatus SearchStatus = "results_available" // Есть хотя бы одно предложение
	NeedsAttentionStatus   SearchStatus = "needs_attention"   // Ошибки рассылки или все рассылки завершились без предложений
	SearchingStatus        SearchStatus = "searching"         // Рассылки ещё в работе

	AdjustSearchAction   RecommendedAction = "adjust_search"
	ContactSupportAction RecommendedAction = "contact_support"
	RefreshAction        RecommendedAction = "refresh"
)

// State - сводка хода поиска по одной заявке для отображения заказчику.
type State struct {
	DestinationsTotal   int               `json:"destinationsTotal"`
	DestinationsPending int               `json:"destinationsPending"`
	DestinationsError   int               `json:"destinationsError"`
	OffersTotal         int               `json:"offersTotal"`
	Status              SearchStatus      `json:"status"`
	RecommendedAction   RecommendedAction `json:"recommendedAction"`
	LastActivityAt      *time.Time        `json:"lastActivityAt,omitempty"`
}

// Aggregate сводит рассылки и предложения по заявке в одно состояние
// поиска. Первый совпавший статус побеждает. Отозванные предложения
// не учитываются.
func Aggregate(destinations []models.Destination, offers []models.Offer) State {
	var state State

	for _, dest := range destinations {
		state.DestinationsTotal++
		if models.IsPendingDestinationStatus(dest.Status) {
			state.DestinationsPending++
		}
		if dest.Status == models.ErrorDestination {
			state.DestinationsError++
		}
		state.LastActivityAt = laterOf(state.LastActivityAt, dest.LastStatusAt)
	}

	for _, offer := range offers {
		if offer.Status == models.WithdrawnOffer {
			continue
		}
		state.OffersTotal++
		state.LastActivityAt = laterOf(state.LastActivityAt, offer.ReceivedAt)
		created := offer.CreatedAt
		state.LastActivityAt = laterOf(state.LastActivityAt, &created)
	}

	switch {
	case state.DestinationsTotal == 0:
		state.Status = NoDestinationsStatus
		state.RecommendedAction = AdjustSearchAction
	case state.OffersTotal > 0:
		state.Status = ResultsAvailableStatus
		state.RecommendedAction = RefreshAction
	case state.DestinationsError > 0:
		state.Status = NeedsAttentionStatus
		state.RecommendedAction = ContactSupportAction
	case state.DestinationsPending == 0:
		state.Status = NeedsAttentionStatus
		state.RecommendedAction = AdjustSearchAction
	default:
		state.Status = SearchingStatus
		state.RecommendedAction = RefreshAction
	}

	return state
}

// laterOf возвращает более позднюю из двух отметок времени, пропуская отсутствующие.
func laterOf(current, next *time.Time) *time.Time {
	if next == nil || next.IsZero() {
		return current
	}
	if current == nil || next.After(*current) {
		value := *next
		return &value
	}
	return current
}
