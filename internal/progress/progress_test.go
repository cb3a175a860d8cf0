package progress

import (
	"testing"
)

func TestAward(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		wantResult string
		wantPoints int
		wantWeight float64
	}{
		{"recyclable", "Recyclable", OutcomeRecyclable, 20, 0.1},
		{"recyclable lowercase", "recyclable", OutcomeRecyclable, 20, 0.1},
		{"hazardous", "Hazardous", OutcomeNonRecyclable, 5, 0},
		{"donatable", "Donatable", OutcomeNonRecyclable, 5, 0},
		{"organic", "Organic", OutcomeNonRecyclable, 5, 0},
		{"general waste", "General Waste", OutcomeNonRecyclable, 5, 0},
		{"unknown category", "Mystery", OutcomeNonRecyclable, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, points, weight := award(tt.category)
			if result != tt.wantResult {
				t.Errorf("result = %q, want %q", result, tt.wantResult)
			}
			if points != tt.wantPoints {
				t.Errorf("points = %d, want %d", points, tt.wantPoints)
			}
			if weight != tt.wantWeight {
				t.Errorf("weight = %v, want %v", weight, tt.wantWeight)
			}
		})
	}
}
