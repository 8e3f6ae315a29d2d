package router

import (
	"net/http"

	"github.com/senyabanana/rfq-service/internal/handlers"
)

func InitRoutes(quoteHandler *handlers.QuoteHandler, awardHandler *handlers.AwardHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("GET /api/quotes/{quoteId}/offers", quoteHandler.GetOffersView)
	mux.HandleFunc("POST /api/quotes/{quoteId}/offers", quoteHandler.SubmitOffer)
	mux.HandleFunc("POST /api/quotes/{quoteId}/offers/{offerId}/withdraw", quoteHandler.WithdrawOffer)
	mux.HandleFunc("GET /api/quotes/{quoteId}/bids", quoteHandler.GetQuoteBids)
	mux.HandleFunc("GET /api/quotes/{quoteId}/search-state", quoteHandler.GetSearchState)
	mux.HandleFunc("GET /api/quotes/{quoteId}/reply-obligation", quoteHandler.GetReplyObligation)
	mux.HandleFunc("GET /api/quotes/{quoteId}/primary-action", quoteHandler.GetPrimaryAction)

	mux.HandleFunc("POST /api/quotes/{quoteId}/award", awardHandler.Award)
	mux.HandleFunc("POST /api/quotes/{quoteId}/undo-award", awardHandler.UndoAward)

	return mux
}
