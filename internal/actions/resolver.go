package actions

import "github.com/senyabanana/rfq-service/internal/models"

type Tone string // Визуальный акцент действия в интерфейсе

const (
	EmphasisTone Tone = "emphasis" // Требует решения, выделяется
	ActiveTone   Tone = "active"   // Обычное активное действие
	MutedTone    Tone = "muted"    // Приглушённое, заявка завершена
)

// PrimaryAction - единственное "лучшее следующее действие" для зрителя заявки.
type PrimaryAction struct {
	Label  string `json:"label"`
	Anchor string `json:"anchor"`
	Tone   Tone   `json:"tone"`
}

// Hints - заранее вычисленные признаки состояния заявки. Их считают
// внешние слои; резольвер только выбирает действие по приоритету
// и ничего не пересчитывает.
type Hints struct {
	NeedsDecision     bool  `json:"needsDecision"`
	HasWinner         *bool `json:"hasWinner,omitempty"` // nil - вывести из полей награждения
	KickoffComplete   bool  `json:"kickoffComplete"`
	CanSubmitBid      bool  `json:"canSubmitBid"`
	AwardedToSupplier bool  `json:"awardedToSupplier"`
	CanAward          bool  `json:"canAward"`
}

// Resolve выбирает главное действие по роли зрителя, статусу заявки и
// признакам. Первый совпавший приоритет побеждает. Функция чистая,
// роль проверяется на границе запроса.
func Resolve(role models.ViewerRole, status models.QuoteStatus, quote *models.Quote, hints Hints) PrimaryAction {
	hasWinner := hints.HasWinner != nil && *hints.HasWinner
	if hints.HasWinner == nil && quote != nil {
		hasWinner = quote.AwardedSupplierID != nil || quote.AwardedAt != nil
	}

	closed := status == models.LostQuote || status == models.CancelledQuote

	switch role {
	case models.AdminRole:
		if hints.NeedsDecision {
			return PrimaryAction{Label: "Award", Anchor: "#bids", Tone: EmphasisTone}
		}
		if hasWinner {
			return PrimaryAction{Label: "View kickoff", Anchor: "#kickoff", Tone: ActiveTone}
		}
		return PrimaryAction{Label: "Open messages", Anchor: "#messages", Tone: ActiveTone}

	case models.SupplierRole:
		if hints.CanSubmitBid {
			return PrimaryAction{Label: "Submit bid", Anchor: "#bid-form", Tone: EmphasisTone}
		}
		if hints.AwardedToSupplier {
			return PrimaryAction{Label: "Kickoff", Anchor: "#kickoff", Tone: ActiveTone}
		}
		if hasWinner || closed {
			return PrimaryAction{Label: "Open messages", Anchor: "#messages", Tone: MutedTone}
		}
		return PrimaryAction{Label: "Open messages", Anchor: "#messages", Tone: ActiveTone}
	}

	// customer
	if hints.CanAward {
		return PrimaryAction{Label: "Review bids", Anchor: "#bids", Tone: EmphasisTone}
	}
	if hasWinner && !hints.KickoffComplete {
		return PrimaryAction{Label: "View kickoff", Anchor: "#kickoff", Tone: ActiveTone}
	}
	if closed {
		return PrimaryAction{Label: "View timeline", Anchor: "#timeline", Tone: MutedTone}
	}
	return PrimaryAction{Label: "View timeline", Anchor: "#timeline", Tone: ActiveTone}
}
