package messaging

import (
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
)

// DefaultSLAWindowHours - окно ответа по умолчанию, часов.
const DefaultSLAWindowHours = 24

// Obligation - кто должен следующий ответ в переписке и просрочен ли он.
type Obligation struct {
	SupplierOwesReply           bool              `json:"supplierOwesReply"`
	CustomerOwesReply           bool              `json:"customerOwesReply"`
	SupplierReplyOverdue        bool              `json:"supplierReplyOverdue"`
	CustomerReplyOverdue        bool              `json:"customerReplyOverdue"`
	LastCustomerMessageAt       string            `json:"lastCustomerMessageAt,omitempty"`
	LastSupplierMessageAt       string            `json:"lastSupplierMessageAt,omitempty"`
	LastThreadMessageAt         string            `json:"lastThreadMessageAt,omitempty"`
	LastThreadMessageSenderRole models.SenderRole `json:"lastThreadMessageSenderRole,omitempty"`
}

// TrackObligation вычисляет, какая сторона должна ответ и не вышла ли она
// за окно SLA. Сообщения без распознанной роли или отметки времени
// пропускаются. Отметки времени - строки ISO-8601, поэтому максимум
// ищется лексикографическим сравнением. Текущее время передаётся
// снаружи, чтобы расчёт был детерминированным.
func TrackObligation(messages []models.Message, slaWindowHours float64, now time.Time) Obligation {
	if slaWindowHours <= 0 {
		slaWindowHours = DefaultSLAWindowHours
	}

	var result Obligation
	for _, msg := range messages {
		if !models.ValidSenderRole(msg.SenderRole) {
			continue
		}
		if _, err := time.Parse(time.RFC3339, msg.CreatedAt); err != nil {
			continue
		}
		switch msg.SenderRole {
		case models.CustomerSender:
			if msg.CreatedAt > result.LastCustomerMessageAt {
				result.LastCustomerMessageAt = msg.CreatedAt
			}
		case models.SupplierSender:
			if msg.CreatedAt > result.LastSupplierMessageAt {
				result.LastSupplierMessageAt = msg.CreatedAt
			}
		}
	}

	result.SupplierOwesReply = result.LastCustomerMessageAt != "" &&
		(result.LastSupplierMessageAt == "" || result.LastSupplierMessageAt < result.LastCustomerMessageAt)
	result.CustomerOwesReply = result.LastSupplierMessageAt != "" &&
		(result.LastCustomerMessageAt == "" || result.LastCustomerMessageAt < result.LastSupplierMessageAt)

	window := time.Duration(slaWindowHours * float64(time.Hour))
	if result.SupplierOwesReply {
		result.SupplierReplyOverdue = olderThan(result.LastCustomerMessageAt, window, now)
	}
	if result.CustomerOwesReply {
		result.CustomerReplyOverdue = olderThan(result.LastSupplierMessageAt, window, now)
	}

	if result.LastCustomerMessageAt >= result.LastSupplierMessageAt && result.LastCustomerMessageAt != "" {
		result.LastThreadMessageAt = result.LastCustomerMessageAt
		result.LastThreadMessageSenderRole = models.CustomerSender
	} else if result.LastSupplierMessageAt != "" {
		result.LastThreadMessageAt = result.LastSupplierMessageAt
		result.LastThreadMessageSenderRole = models.SupplierSender
	}

	return result
}

// olderThan проверяет, прошло ли с отметки времени больше окна SLA.
func olderThan(timestamp string, window time.Duration, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return false
	}
	return now.Sub(t) > window
}
