package models

import "testing"

func TestNormalizeQuoteStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    QuoteStatus
		wantErr bool
	}{
		{"won", WonQuote, false},
		{" Won ", WonQuote, false},
		{"awarded", WonQuote, false},
		{"canceled", CancelledQuote, false},
		{"cancelled", CancelledQuote, false},
		{"in_review", InReviewQuote, false},
		{"something else", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeQuoteStatus(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeQuoteStatus(%q) expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeQuoteStatus(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
		}
	}
}

func TestAwardResetBidStatuses(t *testing.T) {
	reset := make(map[BidStatus]bool)
	for _, s := range AwardResetBidStatuses {
		reset[s] = true
	}

	// Сбрасываются победные статусы и lost.
	for _, s := range []BidStatus{WonBid, WinnerBid, AcceptedBid, ApprovedBid, LostBid} {
		if !reset[s] {
			t.Errorf("status %s must be reset on undo-award", s)
		}
	}
	// Решения самого поставщика не трогаются.
	for _, s := range []BidStatus{DeclinedBid, WithdrawnBid, SubmittedBid, RevisedBid} {
		if reset[s] {
			t.Errorf("status %s must not be reset on undo-award", s)
		}
	}
}

func TestAwardResetIncludesWinStatuses(t *testing.T) {
	reset := make(map[BidStatus]bool)
	for _, s := range AwardResetBidStatuses {
		reset[s] = true
	}
	for _, s := range WinBidStatuses {
		if !reset[s] {
			t.Errorf("win status %s missing from reset set", s)
		}
	}
	if len(AwardResetBidStatuses) != len(WinBidStatuses)+1 {
		t.Errorf("reset set = %v, want win statuses plus lost", AwardResetBidStatuses)
	}
}

func TestQuoteHasAward(t *testing.T) {
	empty := Quote{ID: "q-1", Status: QuotedQuote}
	if empty.HasAward() {
		t.Error("quote without award fields must not report an award")
	}

	supplier := "sup-1"
	partial := Quote{ID: "q-2", Status: WonQuote, AwardedSupplierID: &supplier}
	if !partial.HasAward() {
		t.Error("any non-empty award field must count as an award")
	}
}
