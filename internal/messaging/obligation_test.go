package messaging

import (
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
)

func msg(role models.SenderRole, createdAt string) models.Message {
	return models.Message{ID: "m-" + createdAt, QuoteID: "q-1", SenderRole: role, CreatedAt: createdAt}
}

func TestTrackObligationSupplierOwes(t *testing.T) {
	t0 := "2025-03-01T10:00:00Z"
	now := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC) // t0 + 25h

	got := TrackObligation([]models.Message{msg(models.CustomerSender, t0)}, 24, now)

	if !got.SupplierOwesReply {
		t.Error("supplierOwesReply = false, want true")
	}
	if !got.SupplierReplyOverdue {
		t.Error("supplierReplyOverdue = false, want true after 25h with 24h window")
	}
	if got.CustomerOwesReply || got.CustomerReplyOverdue {
		t.Error("customer side should owe nothing")
	}
	if got.LastThreadMessageAt != t0 || got.LastThreadMessageSenderRole != models.CustomerSender {
		t.Errorf("last thread message = %s/%s, want %s/customer", got.LastThreadMessageAt, got.LastThreadMessageSenderRole, t0)
	}
}

func TestTrackObligationSupplierReplied(t *testing.T) {
	now := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)
	messages := []models.Message{
		msg(models.CustomerSender, "2025-03-01T10:00:00Z"),
		msg(models.SupplierSender, "2025-03-01T11:00:00Z"),
	}

	got := TrackObligation(messages, 24, now)

	if got.SupplierOwesReply {
		t.Error("supplierOwesReply = true, want false after supplier reply")
	}
	if !got.CustomerOwesReply {
		t.Error("customerOwesReply = false, want true")
	}
	if got.CustomerReplyOverdue {
		t.Error("customerReplyOverdue = true, want false at exactly 24h")
	}
	if got.LastThreadMessageSenderRole != models.SupplierSender {
		t.Errorf("lastThreadMessageSenderRole = %s, want supplier", got.LastThreadMessageSenderRole)
	}
}

func TestTrackObligationIgnoresInvalidEntries(t *testing.T) {
	now := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)
	messages := []models.Message{
		{SenderRole: "system", CreatedAt: "2025-03-01T10:00:00Z"},
		{SenderRole: models.CustomerSender, CreatedAt: "not-a-timestamp"},
		{SenderRole: models.CustomerSender, CreatedAt: ""},
	}

	got := TrackObligation(messages, 24, now)

	if got != (Obligation{}) {
		t.Errorf("obligation = %+v, want empty for invalid entries", got)
	}
}

func TestTrackObligationEmptyThread(t *testing.T) {
	got := TrackObligation(nil, 24, time.Now())
	if got.SupplierOwesReply || got.CustomerOwesReply {
		t.Errorf("empty thread must owe nothing, got %+v", got)
	}
	if got.LastThreadMessageAt != "" {
		t.Errorf("lastThreadMessageAt = %q, want empty", got.LastThreadMessageAt)
	}
}

func TestTrackObligationPicksLatestPerSide(t *testing.T) {
	now := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	messages := []models.Message{
		msg(models.SupplierSender, "2025-03-01T09:00:00Z"),
		msg(models.CustomerSender, "2025-03-01T10:00:00Z"),
		msg(models.SupplierSender, "2025-03-02T08:00:00Z"),
		msg(models.CustomerSender, "2025-03-03T18:30:00Z"),
	}

	got := TrackObligation(messages, 24, now)

	if got.LastCustomerMessageAt != "2025-03-03T18:30:00Z" {
		t.Errorf("lastCustomerMessageAt = %s", got.LastCustomerMessageAt)
	}
	if got.LastSupplierMessageAt != "2025-03-02T08:00:00Z" {
		t.Errorf("lastSupplierMessageAt = %s", got.LastSupplierMessageAt)
	}
	if !got.SupplierOwesReply || !got.SupplierReplyOverdue {
		t.Errorf("supplier owes overdue reply, got %+v", got)
	}
}

func TestTrackObligationDefaultWindow(t *testing.T) {
	t0 := "2025-03-01T10:00:00Z"
	now := time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC)

	// Нулевое окно заменяется значением по умолчанию (24 часа).
	got := TrackObligation([]models.Message{msg(models.CustomerSender, t0)}, 0, now)
	if !got.SupplierReplyOverdue {
		t.Error("supplierReplyOverdue = false, want true with default window")
	}
}
