package services

import (
	"context"
	"log"
	"net/http"

	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/events"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Authorizer проверяет права вызывающего. Проверка выполняется до любого
// чтения данных, чтобы не раскрывать существование заявки постороннему.
type Authorizer interface {
	IsAdmin(ctx context.Context, username string) (bool, error)
}

// PoolAuthorizer - реализация Authorizer поверх таблицы users.
type PoolAuthorizer struct {
	dbPool *pgxpool.Pool
}

// NewPoolAuthorizer создает новый экземпляр PoolAuthorizer.
func NewPoolAuthorizer(dbPool *pgxpool.Pool) *PoolAuthorizer {
	return &PoolAuthorizer{dbPool: dbPool}
}

// IsAdmin проверяет, что пользователь существует и имеет роль admin.
func (a *PoolAuthorizer) IsAdmin(ctx context.Context, username string) (bool, error) {
	return utils.CheckUserIsAdmin(ctx, a.dbPool, username)
}

// AwardService выполняет выбор победителя по заявке и отмену этого решения.
// Единственный компонент с побочными эффектами: пишет в quotes и
// supplier_bids, инвалидирует кэш представлений и шлёт событие в ленту.
type AwardService struct {
	Quotes   repository.QuoteRepository
	Bids     repository.BidRepository
	Auth     Authorizer
	Cache    cache.ViewCache
	Timeline events.TimelineSink
	Logger   *log.Logger
}

// NewAwardService создает новый экземпляр AwardService.
func NewAwardService(quotes repository.QuoteRepository, bids repository.BidRepository, auth Authorizer, viewCache cache.ViewCache, timeline events.TimelineSink, logger *log.Logger) *AwardService {
	return &AwardService{
		Quotes:   quotes,
		Bids:     bids,
		Auth:     auth,
		Cache:    viewCache,
		Timeline: timeline,
		Logger:   logger,
	}
}

// Award выбирает ставку победителем. Все поля награждения и статус won
// пишутся одним условным запросом; повторное награждение той же ставкой -
// идемпотентный no-op, попытка наградить уже награждённую заявку другой
// ставкой отклоняется.
func (s *AwardService) Award(ctx context.Context, quoteID, bidID, username string) (*models.AwardResult, error) {
	isAdmin, err := s.Auth.IsAdmin(ctx, username)
	if err != nil {
		s.Logger.Printf("award %s: admin check failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrUnknown)
	}
	if !isAdmin {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, models.AwardErrUnauthorized)
	}

	if !utils.ValidQuoteID(quoteID) || !utils.ValidQuoteID(bidID) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.AwardErrInvalidQuoteID)
	}

	bid, err := s.Bids.GetBid(ctx, bidID)
	if err == repository.ErrBidNotFound {
		return nil, models.NewErrorResponse(http.StatusNotFound, models.AwardErrNotFound)
	}
	if err != nil {
		s.Logger.Printf("award %s: bid lookup failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrQuoteLookupFailed)
	}
	if bid.QuoteID != quoteID {
		return nil, models.NewErrorResponse(http.StatusNotFound, models.AwardErrNotFound)
	}

	awarded, err := s.Quotes.SetAward(ctx, quoteID, models.AwardFields{
		BidID:      bidID,
		SupplierID: bid.SupplierID,
		ByUserID:   username,
		ByRole:     string(models.AdminRole),
	})
	if err != nil {
		s.Logger.Printf("award %s: write failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrWriteFailed)
	}

	if !awarded {
		// Условный UPDATE не прошёл: заявки нет либо она уже награждена.
		quote, err := s.Quotes.GetQuote(ctx, quoteID)
		if err == repository.ErrQuoteNotFound {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.AwardErrNotFound)
		}
		if err != nil {
			s.Logger.Printf("award %s: lookup failed: %v", quoteID, err)
			return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrQuoteLookupFailed)
		}
		if quote.AwardedBidID != nil && *quote.AwardedBidID == bidID {
			return &models.AwardResult{OK: true, QuoteID: quoteID, BidID: bidID, Awarded: false}, nil
		}
		return nil, models.NewErrorResponse(http.StatusConflict, models.AwardErrWriteFailed)
	}

	if err := s.Bids.MarkAwarded(ctx, quoteID, bidID); err != nil {
		s.Logger.Printf("award %s: bid status update failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrWriteFailed)
	}

	s.invalidate(ctx, quoteID)
	s.Timeline.QuoteAwardChanged(ctx, quoteID, "award_set", username)

	return &models.AwardResult{OK: true, QuoteID: quoteID, BidID: bidID, Awarded: true}, nil
}

// UndoAward отменяет решение о победителе. Операция идемпотентна:
// заявка без награждения даёт {ok:true, undone:false}. Очистка полей
// выполняется одним условным запросом, поэтому гонка двух отмен
// безопасна - проигравшая просто не заденет ни одной строки.
func (s *AwardService) UndoAward(ctx context.Context, quoteID, username string) (*models.UndoAwardResult, error) {
	isAdmin, err := s.Auth.IsAdmin(ctx, username)
	if err != nil {
		s.Logger.Printf("undo award %s: admin check failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrUnknown)
	}
	if !isAdmin {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, models.AwardErrUnauthorized)
	}

	if !utils.ValidQuoteID(quoteID) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.AwardErrInvalidQuoteID)
	}

	quote, err := s.Quotes.GetQuote(ctx, quoteID)
	if err == repository.ErrQuoteNotFound {
		return nil, models.NewErrorResponse(http.StatusNotFound, models.AwardErrNotFound)
	}
	if err != nil {
		s.Logger.Printf("undo award %s: lookup failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrQuoteLookupFailed)
	}

	if !quote.HasAward() {
		// Идемпотентный no-op: отменять нечего, но представления всё равно
		// инвалидируются, чтобы зритель не видел устаревшую таблицу.
		s.invalidate(ctx, quoteID)
		return &models.UndoAwardResult{OK: true, QuoteID: quoteID, Undone: false}, nil
	}

	// Статус откатывается только с канонического won: статус, который
	// координатор не выставлял сам, понижать нельзя.
	var nextStatus *models.QuoteStatus
	if normalized, err := models.NormalizeQuoteStatus(string(quote.Status)); err == nil && normalized == models.WonQuote {
		hasBids, err := s.Bids.HasQuoteBids(ctx, quoteID)
		if err != nil {
			s.Logger.Printf("undo award %s: bid lookup failed: %v", quoteID, err)
			return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrQuoteLookupFailed)
		}
		status := models.InReviewQuote
		if hasBids {
			status = models.QuotedQuote
		}
		nextStatus = &status
	}

	cleared, err := s.Quotes.ClearAward(ctx, quoteID, nextStatus)
	if err != nil {
		s.Logger.Printf("undo award %s: write failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrWriteFailed)
	}
	if !cleared {
		// Параллельная отмена успела раньше - для вызывающего это тот же
		// идемпотентный no-op.
		s.invalidate(ctx, quoteID)
		return &models.UndoAwardResult{OK: true, QuoteID: quoteID, Undone: false}, nil
	}

	if err := s.Bids.ResetAwardStatuses(ctx, quoteID); err != nil {
		s.Logger.Printf("undo award %s: bid status reset failed: %v", quoteID, err)
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.AwardErrWriteFailed)
	}

	s.invalidate(ctx, quoteID)
	s.Timeline.QuoteAwardChanged(ctx, quoteID, "award_undone", username)

	return &models.UndoAwardResult{OK: true, QuoteID: quoteID, Undone: true}, nil
}

// invalidate сбрасывает кэш представлений заявки. Ошибка кэша не должна
// валить операцию награждения, поэтому только логируется.
func (s *AwardService) invalidate(ctx context.Context, quoteID string) {
	if err := s.Cache.InvalidateQuote(ctx, quoteID); err != nil {
		s.Logger.Printf("cache invalidation for quote %s failed: %v", quoteID, err)
	}
}
