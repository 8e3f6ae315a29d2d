package ranking

import (
	"reflect"
	"testing"

	"github.com/senyabanana/rfq-service/internal/models"
)

func TestScoreCompleteness(t *testing.T) {
	tests := []struct {
		name           string
		offer          models.Offer
		wantScore      int
		wantActionable bool
		wantMissing    []string
	}{
		{
			name: "all fields present",
			offer: models.Offer{
				TotalPrice:      "1000",
				UnitPrice:       10.5,
				LeadTimeDaysMin: f64Ptr(7),
			},
			wantScore:      100,
			wantActionable: true,
			wantMissing:    []string{},
		},
		{
			name:           "lead time only",
			offer:          models.Offer{LeadTimeDaysMax: f64Ptr(21)},
			wantScore:      35,
			wantActionable: false,
			wantMissing:    []string{"Missing total price", "Missing unit price"},
		},
		{
			name:           "unit price only",
			offer:          models.Offer{UnitPrice: "2.40"},
			wantScore:      15,
			wantActionable: true,
			wantMissing:    []string{"Missing total price", "Missing lead time"},
		},
		{
			name:           "nothing present",
			offer:          models.Offer{TotalPrice: "TBD"},
			wantScore:      0,
			wantActionable: false,
			wantMissing:    []string{"Missing total price", "Missing unit price", "Missing lead time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCompleteness(tt.offer)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.IsActionable != tt.wantActionable {
				t.Errorf("isActionable = %v, want %v", got.IsActionable, tt.wantActionable)
			}
			if !reflect.DeepEqual(got.Missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", got.Missing, tt.wantMissing)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("score %d out of [0,100]", got.Score)
			}
		})
	}
}
