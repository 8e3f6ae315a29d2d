package models

// Коды ошибок операций награждения. Закрытый список: обработчики отдают
// их наружу как есть, чтобы вызывающая сторона могла показать точное сообщение.
const (
	AwardErrInvalidQuoteID    = "invalid_quote_id"
	AwardErrQuoteLookupFailed = "quote_lookup_failed"
	AwardErrNotFound          = "not_found"
	AwardErrWriteFailed       = "write_failed"
	AwardErrUnauthorized      = "unauthorized"
	AwardErrUnknown           = "unknown"
)

// AwardFields - значения, записываемые в заявку при выборе победителя.
// Все поля пишутся одним запросом вместе со статусом won.
type AwardFields struct {
	BidID      string
	SupplierID string
	ProviderID *string
	OfferID    *string
	ByUserID   string
	ByRole     string
}

// UndoAwardResult представляет результат отмены решения о победителе.
// Undone=false при повторном вызове: операция идемпотентна.
type UndoAwardResult struct {
	OK      bool   `json:"ok"`
	QuoteID string `json:"quoteId,omitempty"`
	Undone  bool   `json:"undone,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AwardResult представляет результат выбора победителя по заявке.
type AwardResult struct {
	OK      bool   `json:"ok"`
	QuoteID string `json:"quoteId,omitempty"`
	BidID   string `json:"bidId,omitempty"`
	Awarded bool   `json:"awarded,omitempty"`
	Error   string `json:"error,omitempty"`
}
