package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/senyabanana/rfq-service/internal/actions"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"
)

// QuoteHandler - структура для обработки HTTP-запросов по представлениям заявки.
type QuoteHandler struct {
	Service *services.QuoteViewService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewQuoteHandler создает новый экземпляр QuoteHandler.
func NewQuoteHandler(service *services.QuoteViewService, logger *log.Logger, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetOffersView обрабатывает запросы сравнительной таблицы предложений.
func (h *QuoteHandler) GetOffersView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	view, err := h.Service.GetOffersView(ctx, quoteID)
	if err != nil {
		h.respondError(w, err, "failed to build offers view")
		return
	}
	h.respondJSON(w, view)
}

// GetSearchState обрабатывает запросы сводки поиска поставщиков.
func (h *QuoteHandler) GetSearchState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	state, err := h.Service.GetSearchState(ctx, quoteID)
	if err != nil {
		h.respondError(w, err, "failed to build search state")
		return
	}
	h.respondJSON(w, state)
}

// GetQuoteBids обрабатывает постраничный список ставок по заявке.
func (h *QuoteHandler) GetQuoteBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	bids, err := h.Service.GetQuoteBids(ctx, quoteID, limit, offset)
	if err != nil {
		h.respondError(w, err, "failed to fetch bids")
		return
	}
	h.respondJSON(w, bids)
}

// GetReplyObligation обрабатывает запросы состояния переписки по заявке.
func (h *QuoteHandler) GetReplyObligation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	obligation, err := h.Service.GetReplyObligation(ctx, quoteID)
	if err != nil {
		h.respondError(w, err, "failed to compute reply obligation")
		return
	}
	h.respondJSON(w, obligation)
}

// GetPrimaryAction обрабатывает запросы главного действия для зрителя.
// Признаки состояния заявки передаются параметрами запроса: их считают
// внешние слои, обработчик только разбирает значения.
func (h *QuoteHandler) GetPrimaryAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")
	role := models.ViewerRole(r.URL.Query().Get("role"))

	hints, err := parseHints(r)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	action, err := h.Service.GetPrimaryAction(ctx, quoteID, role, hints)
	if err != nil {
		h.respondError(w, err, "failed to resolve primary action")
		return
	}
	h.respondJSON(w, action)
}

// SubmitOffer обрабатывает создание или ревизию предложения по заявке.
func (h *QuoteHandler) SubmitOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	var offerReq models.OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&offerReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.Service.SubmitOffer(ctx, quoteID, offerReq)
	if err != nil {
		h.respondError(w, err, "failed to save offer")
		return
	}
	h.respondJSON(w, offer)
}

// WithdrawOffer обрабатывает отзыв предложения поставщиком.
func (h *QuoteHandler) WithdrawOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")
	offerID := r.PathValue("offerId")

	if err := h.Service.WithdrawOffer(ctx, quoteID, offerID); err != nil {
		h.respondError(w, err, "failed to withdraw offer")
		return
	}
	h.respondJSON(w, map[string]bool{"ok": true})
}

// respondError разбирает типизированную ошибку сервиса и отвечает клиенту.
func (h *QuoteHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		h.Logger.Println(err)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	h.Logger.Println(err)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// respondJSON сериализует успешный ответ.
func (h *QuoteHandler) respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Println(err)
	}
}

// parseHints разбирает необязательные булевы признаки из query-параметров.
func parseHints(r *http.Request) (actions.Hints, error) {
	var hints actions.Hints
	query := r.URL.Query()

	flags := map[string]*bool{
		"needsDecision":     &hints.NeedsDecision,
		"kickoffComplete":   &hints.KickoffComplete,
		"canSubmitBid":      &hints.CanSubmitBid,
		"awardedToSupplier": &hints.AwardedToSupplier,
		"canAward":          &hints.CanAward,
	}
	for name, dest := range flags {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return actions.Hints{}, err
		}
		*dest = value
	}

	// hasWinner без явного значения выводится из полей награждения заявки.
	if raw := query.Get("hasWinner"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return actions.Hints{}, err
		}
		hints.HasWinner = &value
	}
	return hints, nil
}
