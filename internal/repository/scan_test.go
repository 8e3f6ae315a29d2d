package repository

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
)

// stubRow подставляет значения в указатели назначения вместо строки БД.
// nil в values оставляет поле назначения нетронутым.
type stubRow struct {
	values []interface{}
}

func (s stubRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		if s.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(s.values[i]))
	}
	return nil
}

func offerRow(status string) stubRow {
	price := "1000"
	return stubRow{values: []interface{}{
		"o-1", "q-1", nil, nil, "USD",
		&price, nil, nil, nil,
		nil, nil, nil,
		[]string{}, status, nil, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
}

func bidRow(status string) stubRow {
	return stubRow{values: []interface{}{
		"b-1", "q-1", "sup-1", status, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
}

func destinationRow(status string) stubRow {
	return stubRow{values: []interface{}{"d-1", "q-1", status, nil}}
}

func TestScanOfferNormalizesStatus(t *testing.T) {
	offer, err := scanOffer(offerRow(" Received "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offer.Status != models.ReceivedOffer {
		t.Errorf("status = %q, want %q", offer.Status, models.ReceivedOffer)
	}
	if offer.TotalPrice != "1000" {
		t.Errorf("totalPrice = %v, want 1000", offer.TotalPrice)
	}
}

func TestScanOfferRejectsUnknownStatus(t *testing.T) {
	_, err := scanOffer(offerRow("pending_review"))
	if err == nil || !strings.Contains(err.Error(), "unknown offer status") {
		t.Errorf("err = %v, want unknown offer status", err)
	}
}

func TestScanBidNormalizesStatus(t *testing.T) {
	bid, err := scanBid(bidRow("SUBMITTED"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.Status != models.SubmittedBid {
		t.Errorf("status = %q, want %q", bid.Status, models.SubmittedBid)
	}
}

func TestScanBidRejectsUnknownStatus(t *testing.T) {
	_, err := scanBid(bidRow("paused"))
	if err == nil || !strings.Contains(err.Error(), "unknown bid status") {
		t.Errorf("err = %v, want unknown bid status", err)
	}
}

func TestScanDestinationNormalizesStatus(t *testing.T) {
	dest, err := scanDestination(destinationRow("Sent"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Status != models.SentDestination {
		t.Errorf("status = %q, want %q", dest.Status, models.SentDestination)
	}
}

func TestScanDestinationRejectsUnknownStatus(t *testing.T) {
	_, err := scanDestination(destinationRow("archived"))
	if err == nil || !strings.Contains(err.Error(), "unknown destination status") {
		t.Errorf("err = %v, want unknown destination status", err)
	}
}
