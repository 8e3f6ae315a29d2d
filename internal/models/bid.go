package models

import (
	"fmt"
	"strings"
	"time"
)

type BidStatus string // Статус ставки поставщика

const (
	SubmittedBid BidStatus = "submitted" // Ставка подана
	RevisedBid   BidStatus = "revised"   // Ставка пересмотрена поставщиком
	AcceptedBid  BidStatus = "accepted"  // Ставка принята
	WonBid       BidStatus = "won"       // Ставка выбрана победителем
	WinnerBid    BidStatus = "winner"    // Синоним won в старых записях
	ApprovedBid  BidStatus = "approved"  // Ставка утверждена администратором
	DeclinedBid  BidStatus = "declined"  // Ставка отклонена самим поставщиком
	WithdrawnBid BidStatus = "withdrawn" // Ставка отозвана поставщиком
	LostBid      BidStatus = "lost"      // Ставка проиграла
)

// NormalizeBidStatus приводит строку статуса ставки к каноническому значению.
func NormalizeBidStatus(raw string) (BidStatus, error) {
	s := BidStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SubmittedBid, RevisedBid, AcceptedBid, WonBid, WinnerBid, ApprovedBid, DeclinedBid, WithdrawnBid, LostBid:
		return s, nil
	}
	return "", fmt.Errorf("unknown bid status %q", raw)
}

// WinBidStatuses - статусы, которые означают победу ставки.
var WinBidStatuses = []BidStatus{AcceptedBid, WonBid, WinnerBid, ApprovedBid}

// AwardResetBidStatuses - статусы, которые сбрасываются в submitted при отмене
// решения о победителе: победные плюс lost. declined и withdrawn сюда не
// входят: это решения самого поставщика, не зависящие от награждения.
var AwardResetBidStatuses = append(append([]BidStatus{}, WinBidStatuses...), LostBid)

// Bid представляет модель ставки поставщика по заявке.
type Bid struct {
	ID         string    `json:"id"`
	QuoteID    string    `json:"quoteId"`
	SupplierID string    `json:"supplierId"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
