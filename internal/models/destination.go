package models

import (
	"fmt"
	"strings"
	"time"
)

type DestinationStatus string // Статус рассылки заявки поставщику

const (
	DraftDestination     DestinationStatus = "draft"     // Черновик рассылки
	QueuedDestination    DestinationStatus = "queued"    // Рассылка в очереди
	SentDestination      DestinationStatus = "sent"      // Заявка отправлена поставщику
	SubmittedDestination DestinationStatus = "submitted" // Заявка подана через портал поставщика
	ViewedDestination    DestinationStatus = "viewed"    // Поставщик открыл заявку
	QuotedDestination    DestinationStatus = "quoted"    // Поставщик прислал предложение
	DeclinedDestination  DestinationStatus = "declined"  // Поставщик отказался
	ErrorDestination     DestinationStatus = "error"     // Отправка завершилась ошибкой
	PendingDestination   DestinationStatus = "pending"   // Ожидает обработки
)

// NormalizeDestinationStatus приводит строку статуса рассылки к каноническому значению.
func NormalizeDestinationStatus(raw string) (DestinationStatus, error) {
	s := DestinationStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case DraftDestination, QueuedDestination, SentDestination, SubmittedDestination,
		ViewedDestination, QuotedDestination, DeclinedDestination, ErrorDestination, PendingDestination:
		return s, nil
	}
	return "", fmt.Errorf("unknown destination status %q", raw)
}

// PendingDestinationStatuses - статусы, при которых поиск по рассылке ещё идёт.
var PendingDestinationStatuses = []DestinationStatus{
	DraftDestination, QueuedDestination, SentDestination, SubmittedDestination, ViewedDestination,
}

// IsPendingDestinationStatus проверяет, относится ли статус к незавершённым.
func IsPendingDestinationStatus(status DestinationStatus) bool {
	for _, s := range PendingDestinationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Destination представляет модель рассылки заявки одному поставщику.
type Destination struct {
	ID           string            `json:"id"`
	RfqID        string            `json:"rfqId"`
	Status       DestinationStatus `json:"status"`
	LastStatusAt *time.Time        `json:"lastStatusAt,omitempty"`
}
