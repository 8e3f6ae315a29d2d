package models

import (
	"fmt"
	"strings"
	"time"
)

type (
	QuoteStatus string // Статус заявки (RFQ)
	ViewerRole  string // Роль пользователя, открывшего заявку
)

const (
	DraftQuote     QuoteStatus = "draft"     // Заявка создана, но не отправлена
	OpenQuote      QuoteStatus = "open"      // Заявка открыта для предложений
	InReviewQuote  QuoteStatus = "in_review" // Заявка на рассмотрении у заказчика
	QuotedQuote    QuoteStatus = "quoted"    // По заявке получены предложения
	WonQuote       QuoteStatus = "won"       // По заявке выбран победитель
	LostQuote      QuoteStatus = "lost"      // Заявка проиграна / не состоялась
	CancelledQuote QuoteStatus = "cancelled" // Заявка отменена

	AdminRole    ViewerRole = "admin"
	SupplierRole ViewerRole = "supplier"
	CustomerRole ViewerRole = "customer"
)

// NormalizeQuoteStatus приводит произвольную строку статуса к каноническому значению.
// Неизвестные значения отклоняются на границе, а не нормализуются молча.
func NormalizeQuoteStatus(raw string) (QuoteStatus, error) {
	s := QuoteStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case DraftQuote, OpenQuote, InReviewQuote, QuotedQuote, WonQuote, LostQuote, CancelledQuote:
		return s, nil
	case "canceled":
		return CancelledQuote, nil
	case "awarded", "winner":
		return WonQuote, nil
	}
	return "", fmt.Errorf("unknown quote status %q", raw)
}

// ValidViewerRole проверяет, что роль пользователя входит в закрытый список.
func ValidViewerRole(role ViewerRole) bool {
	switch role {
	case AdminRole, SupplierRole, CustomerRole:
		return true
	default:
		return false
	}
}

// Quote представляет модель заявки на производство.
// Поля награждения заполняются все вместе при выборе победителя и
// очищаются все вместе при отмене решения; частично заполненного
// состояния после успешной операции не бывает.
type Quote struct {
	ID                string      `json:"id"`
	Status            QuoteStatus `json:"status"`
	AwardedBidID      *string     `json:"awardedBidId,omitempty"`
	AwardedSupplierID *string     `json:"awardedSupplierId,omitempty"`
	AwardedProviderID *string     `json:"awardedProviderId,omitempty"`
	AwardedOfferID    *string     `json:"awardedOfferId,omitempty"`
	AwardedAt         *time.Time  `json:"awardedAt,omitempty"`
	AwardedByUserID   *string     `json:"awardedByUserId,omitempty"`
	AwardedByRole     *string     `json:"awardedByRole,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// HasAward сообщает, зафиксировано ли по заявке решение о победителе.
// Достаточно любого непустого поля награждения.
func (q *Quote) HasAward() bool {
	return q.AwardedBidID != nil ||
		q.AwardedSupplierID != nil ||
		q.AwardedProviderID != nil ||
		q.AwardedOfferID != nil ||
		q.AwardedAt != nil
}
