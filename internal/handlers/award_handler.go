package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
)

// AwardHandler - структура для обработки запросов награждения и его отмены.
type AwardHandler struct {
	Service *services.AwardService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewAwardHandler создает новый экземпляр AwardHandler.
func NewAwardHandler(service *services.AwardService, logger *log.Logger, timeout time.Duration) *AwardHandler {
	return &AwardHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Award обрабатывает выбор победителя по заявке.
func (h *AwardHandler) Award(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")
	bidID := r.URL.Query().Get("bidId")
	username := r.URL.Query().Get("username")

	result, err := h.Service.Award(ctx, quoteID, bidID, username)
	if err != nil {
		h.Logger.Println(err)
		status, code := awardFailure(err)
		h.writeResult(w, status, models.AwardResult{OK: false, QuoteID: quoteID, Error: code})
		return
	}
	h.writeResult(w, http.StatusOK, result)
}

// UndoAward обрабатывает отмену решения о победителе. Контракт ответа:
// {ok, quoteId, undone} при успехе, {ok:false, error:код} при отказе.
func (h *AwardHandler) UndoAward(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")
	username := r.URL.Query().Get("username")

	result, err := h.Service.UndoAward(ctx, quoteID, username)
	if err != nil {
		h.Logger.Println(err)
		status, code := awardFailure(err)
		h.writeResult(w, status, models.UndoAwardResult{OK: false, QuoteID: quoteID, Error: code})
		return
	}
	h.writeResult(w, http.StatusOK, result)
}

// writeResult сериализует результат операции награждения.
func (h *AwardHandler) writeResult(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Println(err)
	}
}

// awardFailure извлекает HTTP-статус и код ошибки из типизированной ошибки.
// Всё неожиданное сворачивается в unknown без деталей.
func awardFailure(err error) (int, string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		return errorResponse.StatusCode, errorResponse.Message
	}
	return http.StatusInternalServerError, models.AwardErrUnknown
}
