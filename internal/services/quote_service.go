package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/actions"
	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/messaging"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/ranking"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/search"
	"github.com/senyabanana/rfq-service/internal/utils"
)

// OfferComparisonRow - строка сравнительной таблицы: ранжированное
// предложение плюс независимая оценка полноты данных.
type OfferComparisonRow struct {
	ranking.RankedOffer
	Completeness ranking.Completeness `json:"completeness"`
}

// OffersView - сравнительная таблица предложений по заявке.
type OffersView struct {
	QuoteID string               `json:"quoteId"`
	Offers  []OfferComparisonRow `json:"offers"`
}

// QuoteViewService собирает представления заявки из чистых компонентов
// поверх уже загруженных данных. Сами компоненты без состояния, поэтому
// сервис безопасен для параллельных запросов.
type QuoteViewService struct {
	Quotes         repository.QuoteRepository
	Offers         repository.OfferRepository
	Bids           repository.BidRepository
	Destinations   repository.DestinationRepository
	Messages       repository.MessageRepository
	Cache          cache.ViewCache
	Caps           models.Capabilities
	SLAWindowHours float64
	Logger         *log.Logger
	Now            func() time.Time
}

// NewQuoteViewService создает новый экземпляр QuoteViewService.
func NewQuoteViewService(
	quotes repository.QuoteRepository,
	offers repository.OfferRepository,
	bids repository.BidRepository,
	destinations repository.DestinationRepository,
	messages repository.MessageRepository,
	viewCache cache.ViewCache,
	caps models.Capabilities,
	slaWindowHours float64,
	logger *log.Logger,
) *QuoteViewService {
	return &QuoteViewService{
		Quotes:         quotes,
		Offers:         offers,
		Bids:           bids,
		Destinations:   destinations,
		Messages:       messages,
		Cache:          viewCache,
		Caps:           caps,
		SLAWindowHours: slaWindowHours,
		Logger:         logger,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// GetOffersView возвращает сравнительную таблицу предложений по заявке.
// Готовое представление кэшируется до инвалидации награждением.
func (s *QuoteViewService) GetOffersView(ctx context.Context, quoteID string) (*OffersView, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return nil, err
	}

	key := cache.OffersViewKey(quoteID)
	var cached OffersView
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	offers, err := s.Offers.GetQuoteOffers(ctx, quoteID)
	if err != nil {
		s.Logger.Printf("offers view %s: fetch failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch offers")
	}

	ranked := ranking.RankOffers(offers)
	view := OffersView{QuoteID: quoteID, Offers: make([]OfferComparisonRow, 0, len(ranked))}
	for _, r := range ranked {
		view.Offers = append(view.Offers, OfferComparisonRow{
			RankedOffer:  r,
			Completeness: ranking.ScoreCompleteness(r.Offer),
		})
	}

	s.writeCache(ctx, key, view)
	return &view, nil
}

// GetSearchState возвращает сводку хода поиска по заявке.
func (s *QuoteViewService) GetSearchState(ctx context.Context, quoteID string) (*search.State, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return nil, err
	}

	key := cache.SearchStateKey(quoteID)
	var cached search.State
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	destinations, err := s.Destinations.GetQuoteDestinations(ctx, quoteID)
	if err != nil {
		s.Logger.Printf("search state %s: destinations fetch failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch destinations")
	}
	offers, err := s.Offers.GetQuoteOffers(ctx, quoteID)
	if err != nil {
		s.Logger.Printf("search state %s: offers fetch failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch offers")
	}

	state := search.Aggregate(destinations, offers)
	s.writeCache(ctx, key, state)
	return &state, nil
}

// GetQuoteBids возвращает страницу ставок по заявке.
func (s *QuoteViewService) GetQuoteBids(ctx context.Context, quoteID string, limit, offset int) ([]models.Bid, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return nil, err
	}

	bids, err := s.Bids.GetQuoteBids(ctx, quoteID, limit, offset)
	if err != nil {
		s.Logger.Printf("bids %s: fetch failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch bids")
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// GetReplyObligation вычисляет, какая сторона должна ответ в переписке.
// В инсталляциях без таблицы сообщений возвращается пустая сводка.
func (s *QuoteViewService) GetReplyObligation(ctx context.Context, quoteID string) (*messaging.Obligation, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return nil, err
	}

	var messages []models.Message
	if s.Caps.HasQuoteMessages {
		var err error
		messages, err = s.Messages.GetQuoteMessages(ctx, quoteID)
		if err != nil {
			s.Logger.Printf("reply obligation %s: messages fetch failed: %v", quoteID, err)
			return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch messages")
		}
	}

	obligation := messaging.TrackObligation(messages, s.SLAWindowHours, s.Now())
	return &obligation, nil
}

// GetPrimaryAction возвращает главное действие для зрителя заявки.
// Признаки состояния считают внешние слои и передают сюда готовыми;
// сервис только проверяет роль, нормализует статус и вызывает резольвер.
func (s *QuoteViewService) GetPrimaryAction(ctx context.Context, quoteID string, role models.ViewerRole, hints actions.Hints) (*actions.PrimaryAction, error) {
	if !models.ValidViewerRole(role) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid viewer role")
	}

	if !utils.ValidQuoteID(quoteID) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid quote id")
	}
	quote, err := s.Quotes.GetQuote(ctx, quoteID)
	if err == repository.ErrQuoteNotFound {
		return nil, models.NewErrorResponse(http.StatusNotFound, "quote not found")
	}
	if err != nil {
		s.Logger.Printf("primary action %s: lookup failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch quote")
	}

	status, err := models.NormalizeQuoteStatus(string(quote.Status))
	if err != nil {
		s.Logger.Printf("primary action %s: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "unrecognized quote status")
	}

	action := actions.Resolve(role, status, quote, hints)
	return &action, nil
}

// SubmitOffer создает или обновляет предложение поставщика по заявке.
func (s *QuoteViewService) SubmitOffer(ctx context.Context, quoteID string, offerReq models.OfferRequest) (*models.Offer, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return nil, err
	}
	if offerReq.ProviderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "providerId is required")
	}
	if offerReq.Currency == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "currency is required")
	}

	offer, err := s.Offers.UpsertOffer(ctx, quoteID, offerReq)
	if err != nil {
		s.Logger.Printf("submit offer %s: write failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to save offer")
	}

	// Новое предложение меняет сравнительную таблицу и сводку поиска.
	if err := s.Cache.InvalidateQuote(ctx, quoteID); err != nil {
		s.Logger.Printf("cache invalidation for quote %s failed: %v", quoteID, err)
	}
	return offer, nil
}

// WithdrawOffer помечает предложение отозванным. Запись не удаляется,
// отозванное предложение просто выпадает из ранжирования и сводки поиска.
func (s *QuoteViewService) WithdrawOffer(ctx context.Context, quoteID, offerID string) error {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return err
	}
	if !utils.ValidQuoteID(offerID) {
		return models.NewErrorResponse(http.StatusBadRequest, "invalid offer id")
	}

	if err := s.Offers.WithdrawOffer(ctx, offerID); err != nil {
		s.Logger.Printf("withdraw offer %s: write failed: %v", offerID, err)
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to withdraw offer")
	}

	if err := s.Cache.InvalidateQuote(ctx, quoteID); err != nil {
		s.Logger.Printf("cache invalidation for quote %s failed: %v", quoteID, err)
	}
	return nil
}

// checkQuote проверяет формат идентификатора и существование заявки.
// Чтение всей строки здесь не нужно, достаточно проверки существования.
func (s *QuoteViewService) checkQuote(ctx context.Context, quoteID string) error {
	if !utils.ValidQuoteID(quoteID) {
		return models.NewErrorResponse(http.StatusBadRequest, "invalid quote id")
	}
	exists, err := s.Quotes.QuoteExists(ctx, quoteID)
	if err != nil {
		s.Logger.Printf("quote %s: lookup failed: %v", quoteID, err)
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch quote")
	}
	if !exists {
		return models.NewErrorResponse(http.StatusNotFound, "quote not found")
	}
	return nil
}

// readCache пытается прочитать представление из кэша. Ошибки кэша не
// валят запрос: представление просто пересобирается.
func (s *QuoteViewService) readCache(ctx context.Context, key string, dest interface{}) bool {
	payload, found, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.Printf("cache read %s failed: %v", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.Logger.Printf("cache payload %s is corrupt: %v", key, err)
		return false
	}
	return true
}

// writeCache сохраняет представление в кэш, ошибки только логируются.
func (s *QuoteViewService) writeCache(ctx context.Context, key string, view interface{}) {
	payload, err := json.Marshal(view)
	if err != nil {
		s.Logger.Printf("cache marshal %s failed: %v", key, err)
		return
	}
	if err := s.Cache.Put(ctx, key, payload); err != nil {
		s.Logger.Printf("cache write %s failed: %v", key, err)
	}
}
